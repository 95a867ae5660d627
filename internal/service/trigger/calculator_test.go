package trigger

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

// 2024-01-15 is a Monday.
func at(day, hour, minute, second int) time.Time {
	return time.Date(2024, 1, day, hour, minute, second, 0, time.UTC)
}

func daily(hour, minute int) *domain.ReminderDefinition {
	return &domain.ReminderDefinition{
		ID:       "daily-1",
		Kind:     domain.KindDaily,
		Enabled:  true,
		Schedule: domain.DailySchedule{Time: domain.NewClockTime(hour, minute)},
	}
}

func weekly(hour, minute int, days ...time.Weekday) *domain.ReminderDefinition {
	return &domain.ReminderDefinition{
		ID:       "weekly-1",
		Kind:     domain.KindWeekly,
		Enabled:  true,
		Schedule: domain.WeeklySchedule{Time: domain.NewClockTime(hour, minute), DaysOfWeek: days},
	}
}

func recurring(interval int, start, end domain.ClockTime) *domain.ReminderDefinition {
	return &domain.ReminderDefinition{
		ID:      "recurring-1",
		Kind:    domain.KindRecurring,
		Enabled: true,
		Schedule: domain.RecurringSchedule{
			IntervalMinutes: interval,
			Window:          domain.ActiveWindow{Start: start, End: end},
		},
	}
}

func TestCalculator_Daily(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "before time today", now: at(15, 7, 59, 0), want: at(15, 8, 0, 0)},
		{name: "exactly at time advances a day", now: at(15, 8, 0, 0), want: at(16, 8, 0, 0)},
		{name: "after time today", now: at(15, 8, 5, 10), want: at(16, 8, 0, 0)},
		{name: "month boundary", now: time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC), want: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Next(daily(8, 0), tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculator_DailyAlwaysWithinNextDay(t *testing.T) {
	calc := NewCalculator()
	base := at(15, 0, 0, 0)

	for minute := 0; minute < 24*60; minute += 7 {
		now := base.Add(time.Duration(minute)*time.Minute + 13*time.Second)
		for _, def := range []*domain.ReminderDefinition{daily(0, 0), daily(8, 0), daily(23, 59)} {
			got := calc.Next(def, now)
			if !got.After(now) {
				t.Fatalf("Next(%v) = %v, not in the future", now, got)
			}
			if got.Sub(now) > 24*time.Hour {
				t.Fatalf("Next(%v) = %v, more than 24h ahead", now, got)
			}
		}
	}
}

func TestCalculator_WeeklyAllDaysMatchesDaily(t *testing.T) {
	calc := NewCalculator()
	all := weekly(8, 0, 0, 1, 2, 3, 4, 5, 6)

	for hour := 0; hour < 48; hour++ {
		now := at(15, 0, 0, 0).Add(time.Duration(hour)*time.Hour + 30*time.Minute)
		if got, want := calc.Next(all, now), calc.Next(daily(8, 0), now); !got.Equal(want) {
			t.Fatalf("at %v weekly-all = %v, daily = %v", now, got, want)
		}
	}
}

func TestCalculator_Weekly(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name string
		def  *domain.ReminderDefinition
		now  time.Time
		want time.Time
	}{
		{
			name: "later today",
			def:  weekly(18, 0, time.Monday, time.Thursday),
			now:  at(15, 9, 0, 0),
			want: at(15, 18, 0, 0),
		},
		{
			name: "today passed picks next day in same week",
			def:  weekly(8, 0, time.Monday, time.Wednesday),
			now:  at(15, 9, 0, 0),
			want: at(17, 8, 0, 0),
		},
		{
			name: "wraps past week boundary",
			def:  weekly(8, 0, time.Monday, time.Tuesday),
			now:  at(17, 9, 0, 0),
			want: at(22, 8, 0, 0),
		},
		{
			name: "only today and already passed goes a full week",
			def:  weekly(8, 0, time.Monday),
			now:  at(15, 8, 0, 0),
			want: at(22, 8, 0, 0),
		},
		{
			name: "sunday wraps to saturday set",
			def:  weekly(10, 30, time.Saturday),
			now:  at(14, 11, 0, 0),
			want: at(20, 10, 30, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Next(tt.def, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculator_Recurring(t *testing.T) {
	calc := NewCalculator()
	def := recurring(60, domain.NewClockTime(8, 0), domain.NewClockTime(22, 0))

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "before window opens", now: at(15, 6, 0, 0), want: at(15, 8, 0, 0)},
		{name: "within tolerance of anchor", now: at(15, 8, 0, 5), want: at(15, 8, 0, 0)},
		{name: "exactly at tolerance", now: at(15, 8, 0, 30), want: at(15, 8, 0, 0)},
		{name: "just past tolerance", now: at(15, 8, 0, 31), want: at(15, 9, 0, 0)},
		{name: "mid interval", now: at(15, 13, 20, 0), want: at(15, 14, 0, 0)},
		{name: "last slot equals end", now: at(15, 21, 10, 0), want: at(15, 22, 0, 0)},
		{name: "after window moves to next anchor", now: at(15, 22, 1, 0), want: at(16, 8, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Next(def, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculator_RecurringUnevenInterval(t *testing.T) {
	calc := NewCalculator()
	def := recurring(45, domain.NewClockTime(9, 0), domain.NewClockTime(10, 0))

	// slots 09:00, 09:45; 10:30 exceeds the window
	got := calc.Next(def, at(15, 9, 50, 0))
	if want := at(16, 9, 0, 0); !got.Equal(want) {
		t.Errorf("Next() = %v, want %v", got, want)
	}
}

func TestCalculator_MalformedFallsBack(t *testing.T) {
	calc := NewCalculator()
	now := at(15, 12, 0, 0)

	tests := []struct {
		name string
		def  *domain.ReminderDefinition
	}{
		{name: "nil schedule", def: &domain.ReminderDefinition{ID: "bad-1", Kind: domain.KindDaily}},
		{name: "invalid clock", def: daily(25, 0)},
		{name: "zero interval", def: recurring(0, domain.NewClockTime(8, 0), domain.NewClockTime(22, 0))},
		{name: "inverted window", def: recurring(30, domain.NewClockTime(22, 0), domain.NewClockTime(8, 0))},
		{name: "weekly without days", def: weekly(8, 0)},
		{name: "interval longer than a day", def: recurring(24*60+1, domain.NewClockTime(8, 0), domain.NewClockTime(22, 0))},
		{name: "interval wrapping negative", def: recurring(1<<52, domain.NewClockTime(8, 0), domain.NewClockTime(22, 0))},
		{name: "interval wrapping to zero", def: recurring(1<<53, domain.NewClockTime(8, 0), domain.NewClockTime(22, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Next(tt.def, now)
			if want := now.Add(FallbackDelay); !got.Equal(want) {
				t.Errorf("Next() = %v, want fallback %v", got, want)
			}
		})
	}
}

func TestCalculator_NextAfterTriggerNeverRegresses(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name string
		def  *domain.ReminderDefinition
		due  time.Time
		now  time.Time
		want time.Time
	}{
		{
			name: "daily polled late",
			def:  daily(8, 0),
			due:  at(15, 8, 0, 0),
			now:  at(15, 8, 5, 10),
			want: at(16, 8, 0, 0),
		},
		{
			name: "recurring polled inside tolerance",
			def:  recurring(60, domain.NewClockTime(8, 0), domain.NewClockTime(22, 0)),
			due:  at(15, 8, 0, 0),
			now:  at(15, 8, 0, 5),
			want: at(15, 9, 0, 0),
		},
		{
			name: "recurring polled exactly on boundary",
			def:  recurring(30, domain.NewClockTime(8, 0), domain.NewClockTime(22, 0)),
			due:  at(15, 10, 30, 0),
			now:  at(15, 10, 30, 0),
			want: at(15, 11, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.def.NextTriggerTime = tt.due
			got := calc.NextAfterTrigger(tt.def, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("NextAfterTrigger() = %v, want %v", got, tt.want)
			}
			if !got.After(tt.due) {
				t.Errorf("NextAfterTrigger() = %v regressed from %v", got, tt.due)
			}
		})
	}
}
