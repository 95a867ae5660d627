package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ClockTime
		wantErr bool
	}{
		{name: "morning", input: "08:00", want: ClockTime{Hour: 8, Minute: 0}},
		{name: "padded whitespace", input: " 22:45 ", want: ClockTime{Hour: 22, Minute: 45}},
		{name: "single digit hour", input: "7:05", want: ClockTime{Hour: 7, Minute: 5}},
		{name: "missing separator", input: "0800", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not a number", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedDefinition) {
					t.Fatalf("expected ErrMalformedDefinition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklySchedule_CoversAllDays(t *testing.T) {
	all := WeeklySchedule{DaysOfWeek: []time.Weekday{0, 1, 2, 3, 4, 5, 6}}
	if !all.CoversAllDays() {
		t.Error("expected all seven days to cover the week")
	}

	duplicates := WeeklySchedule{DaysOfWeek: []time.Weekday{0, 1, 1, 2, 3, 4, 5}}
	if duplicates.CoversAllDays() {
		t.Error("duplicate days must not count as a full week")
	}
}

func TestReminderDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     ReminderDefinition
		wantErr bool
	}{
		{
			name: "valid daily",
			def:  ReminderDefinition{Kind: KindDaily, Schedule: DailySchedule{Time: NewClockTime(8, 0)}},
		},
		{
			name:    "nil schedule",
			def:     ReminderDefinition{Kind: KindDaily},
			wantErr: true,
		},
		{
			name:    "kind mismatch",
			def:     ReminderDefinition{Kind: KindWeekly, Schedule: DailySchedule{Time: NewClockTime(8, 0)}},
			wantErr: true,
		},
		{
			name:    "weekly without days",
			def:     ReminderDefinition{Kind: KindWeekly, Schedule: WeeklySchedule{Time: NewClockTime(8, 0)}},
			wantErr: true,
		},
		{
			name: "recurring zero interval",
			def: ReminderDefinition{Kind: KindRecurring, Schedule: RecurringSchedule{
				Window: ActiveWindow{Start: NewClockTime(8, 0), End: NewClockTime(22, 0)},
			}},
			wantErr: true,
		},
		{
			name: "recurring interval of one day",
			def: ReminderDefinition{Kind: KindRecurring, Schedule: RecurringSchedule{
				IntervalMinutes: MaxIntervalMinutes,
				Window:          ActiveWindow{Start: NewClockTime(0, 0), End: NewClockTime(23, 59)},
			}},
		},
		{
			name: "recurring interval overflowing a duration",
			def: ReminderDefinition{Kind: KindRecurring, Schedule: RecurringSchedule{
				IntervalMinutes: 1 << 53,
				Window:          ActiveWindow{Start: NewClockTime(8, 0), End: NewClockTime(22, 0)},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr && !errors.Is(err, ErrMalformedDefinition) {
				t.Errorf("expected ErrMalformedDefinition, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDedupKey_StablePerOccurrence(t *testing.T) {
	at := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	a := &ReminderDefinition{ID: "r1", NextTriggerTime: at}
	b := &ReminderDefinition{ID: "r1", NextTriggerTime: at, TriggerCount: 4}

	if DedupKey(a) != DedupKey(b) {
		t.Errorf("same occurrence produced different keys: %q vs %q", DedupKey(a), DedupKey(b))
	}

	c := &ReminderDefinition{ID: "r1", NextTriggerTime: at.Add(24 * time.Hour)}
	if DedupKey(a) == DedupKey(c) {
		t.Error("different occurrences must not share a key")
	}
}
