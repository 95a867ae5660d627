package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

func TestReminderRecord_ToDomain(t *testing.T) {
	ntt := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		record       ReminderRecord
		wantSchedule domain.Schedule
		wantErr      bool
	}{
		{
			name:         "daily",
			record:       ReminderRecord{ID: "r1", Kind: "daily", Schedule: ScheduleRecord{Time: "08:00"}, NextTriggerTime: &ntt},
			wantSchedule: domain.DailySchedule{Time: domain.NewClockTime(8, 0)},
		},
		{
			name:   "weekly",
			record: ReminderRecord{ID: "r2", Kind: "weekly", Schedule: ScheduleRecord{Time: "19:30", DaysOfWeek: []int{1, 3}}},
			wantSchedule: domain.WeeklySchedule{
				Time:       domain.NewClockTime(19, 30),
				DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
			},
		},
		{
			name:   "recurring",
			record: ReminderRecord{ID: "r3", Kind: "recurring", Schedule: ScheduleRecord{IntervalMinutes: 60, StartTime: "08:00", EndTime: "22:00"}},
			wantSchedule: domain.RecurringSchedule{
				IntervalMinutes: 60,
				Window:          domain.ActiveWindow{Start: domain.NewClockTime(8, 0), End: domain.NewClockTime(22, 0)},
			},
		},
		{
			name:    "bad clock keeps definition",
			record:  ReminderRecord{ID: "r4", Kind: "daily", Schedule: ScheduleRecord{Time: "25:99"}, NextTriggerTime: &ntt},
			wantErr: true,
		},
		{
			name:    "weekday out of range",
			record:  ReminderRecord{ID: "r5", Kind: "weekly", Schedule: ScheduleRecord{Time: "08:00", DaysOfWeek: []int{7}}},
			wantErr: true,
		},
		{
			name:    "interval beyond one day",
			record:  ReminderRecord{ID: "r7", Kind: "recurring", Schedule: ScheduleRecord{IntervalMinutes: 1 << 52, StartTime: "08:00", EndTime: "22:00"}},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			record:  ReminderRecord{ID: "r6", Kind: "hourly"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := tt.record.ToDomain()
			if def == nil {
				t.Fatal("ToDomain returned nil definition")
			}
			if def.ID != tt.record.ID {
				t.Errorf("ID = %q, want %q", def.ID, tt.record.ID)
			}

			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedDefinition) {
					t.Errorf("error = %v, want ErrMalformedDefinition", err)
				}
				if def.Schedule != nil {
					t.Errorf("Schedule = %#v, want nil", def.Schedule)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FromDomain(def).Schedule.Time != tt.record.Schedule.Time {
				t.Errorf("schedule time did not survive conversion")
			}
			if got, want := ScheduleFromDomain(def.Schedule), ScheduleFromDomain(tt.wantSchedule); got.Time != want.Time ||
				got.IntervalMinutes != want.IntervalMinutes || len(got.DaysOfWeek) != len(want.DaysOfWeek) {
				t.Errorf("schedule = %#v, want %#v", def.Schedule, tt.wantSchedule)
			}
		})
	}
}

func TestFromDomain_OmitsZeroNextTriggerTime(t *testing.T) {
	rec := FromDomain(&domain.ReminderDefinition{
		ID:       "r1",
		Kind:     domain.KindDaily,
		Schedule: domain.DailySchedule{Time: domain.NewClockTime(8, 0)},
	})
	if rec.NextTriggerTime != nil {
		t.Errorf("NextTriggerTime = %v, want nil", rec.NextTriggerTime)
	}
}
