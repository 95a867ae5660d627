// Package wire holds the JSON contract between the engine and the reminder store.
package wire

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

type ScheduleRecord struct {
	Time            string `json:"time,omitempty"`
	DaysOfWeek      []int  `json:"days_of_week,omitempty"`
	IntervalMinutes int    `json:"interval_minutes,omitempty"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
}

type PayloadRecord struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	NavTarget string `json:"nav_target"`
	Category  string `json:"category,omitempty"`
}

type ReminderRecord struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Kind            string         `json:"kind"`
	Enabled         bool           `json:"enabled"`
	Schedule        ScheduleRecord `json:"schedule"`
	NextTriggerTime *time.Time     `json:"next_trigger_time,omitempty"`
	LastTriggered   *time.Time     `json:"last_triggered,omitempty"`
	TriggerCount    int64          `json:"trigger_count"`
	Payload         PayloadRecord  `json:"payload"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type RemindersResponse struct {
	Reminders []ReminderRecord `json:"reminders"`
	Count     int              `json:"count"`
}

type TriggerRequest struct {
	NextTriggerTime      time.Time `json:"next_trigger_time"`
	PreviousTriggerCount int64     `json:"previous_trigger_count"`
}

type TokenRequest struct {
	UserID       string `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	UserID string `json:"user_id"`
}

type RegisterResponse struct {
	UserID       string `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func FromDomain(def *domain.ReminderDefinition) ReminderRecord {
	rec := ReminderRecord{
		ID:           def.ID,
		UserID:       def.UserID,
		Kind:         def.Kind.String(),
		Enabled:      def.Enabled,
		Schedule:     ScheduleFromDomain(def.Schedule),
		TriggerCount: def.TriggerCount,
		Payload: PayloadRecord{
			Title:     def.Payload.Title,
			Body:      def.Payload.Body,
			NavTarget: def.Payload.NavTarget,
			Category:  string(def.Payload.Category),
		},
		UpdatedAt: def.UpdatedAt,
	}
	if !def.NextTriggerTime.IsZero() {
		ntt := def.NextTriggerTime
		rec.NextTriggerTime = &ntt
	}
	if def.LastTriggered != nil {
		lt := *def.LastTriggered
		rec.LastTriggered = &lt
	}
	return rec
}

func ScheduleFromDomain(s domain.Schedule) ScheduleRecord {
	switch v := s.(type) {
	case domain.DailySchedule:
		return ScheduleRecord{Time: v.Time.String()}
	case domain.WeeklySchedule:
		days := make([]int, 0, len(v.DaysOfWeek))
		for _, d := range v.DaysOfWeek {
			days = append(days, int(d))
		}
		return ScheduleRecord{Time: v.Time.String(), DaysOfWeek: days}
	case domain.RecurringSchedule:
		return ScheduleRecord{
			IntervalMinutes: v.IntervalMinutes,
			StartTime:       v.Window.Start.String(),
			EndTime:         v.Window.End.String(),
		}
	}
	return ScheduleRecord{}
}

// ToDomain converts the record. A schedule that cannot be decoded leaves
// Schedule nil and is reported through err; the definition is still usable.
func (r ReminderRecord) ToDomain() (*domain.ReminderDefinition, error) {
	def := &domain.ReminderDefinition{
		ID:           r.ID,
		UserID:       r.UserID,
		Kind:         domain.Kind(r.Kind),
		Enabled:      r.Enabled,
		TriggerCount: r.TriggerCount,
		Payload: domain.Payload{
			Title:     r.Payload.Title,
			Body:      r.Payload.Body,
			NavTarget: r.Payload.NavTarget,
			Category:  domain.Category(r.Payload.Category),
		},
		UpdatedAt: r.UpdatedAt,
	}
	if r.NextTriggerTime != nil {
		def.NextTriggerTime = *r.NextTriggerTime
	}
	if r.LastTriggered != nil {
		lt := *r.LastTriggered
		def.LastTriggered = &lt
	}

	schedule, err := r.Schedule.ToDomain(def.Kind)
	if err != nil {
		return def, err
	}
	def.Schedule = schedule
	return def, nil
}

func (s ScheduleRecord) ToDomain(kind domain.Kind) (domain.Schedule, error) {
	switch kind {
	case domain.KindDaily:
		t, err := domain.ParseClockTime(s.Time)
		if err != nil {
			return nil, err
		}
		return domain.DailySchedule{Time: t}, nil
	case domain.KindWeekly:
		t, err := domain.ParseClockTime(s.Time)
		if err != nil {
			return nil, err
		}
		if len(s.DaysOfWeek) == 0 {
			return nil, fmt.Errorf("%w: weekly schedule without days", domain.ErrMalformedDefinition)
		}
		days := make([]time.Weekday, 0, len(s.DaysOfWeek))
		for _, d := range s.DaysOfWeek {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("%w: weekday %d", domain.ErrMalformedDefinition, d)
			}
			days = append(days, time.Weekday(d))
		}
		return domain.WeeklySchedule{Time: t, DaysOfWeek: days}, nil
	case domain.KindRecurring:
		if s.IntervalMinutes <= 0 || s.IntervalMinutes > domain.MaxIntervalMinutes {
			return nil, fmt.Errorf("%w: interval %d minutes", domain.ErrMalformedDefinition, s.IntervalMinutes)
		}
		start, err := domain.ParseClockTime(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseClockTime(s.EndTime)
		if err != nil {
			return nil, err
		}
		return domain.RecurringSchedule{
			IntervalMinutes: s.IntervalMinutes,
			Window:          domain.ActiveWindow{Start: start, End: end},
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrMalformedDefinition, kind)
}
