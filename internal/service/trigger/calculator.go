package trigger

import (
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

const (
	// FallbackDelay is used for definitions whose schedule cannot be evaluated.
	FallbackDelay = 1 * time.Hour

	// BoundaryTolerance is how far past a recurring boundary "now" may be and still
	// count as that boundary.
	BoundaryTolerance = 30 * time.Second
)

type Calculator struct {
	fallbackDelay time.Duration
	tolerance     time.Duration
}

func NewCalculator() *Calculator {
	return &Calculator{
		fallbackDelay: FallbackDelay,
		tolerance:     BoundaryTolerance,
	}
}

// Next returns the next trigger instant for def relative to now. Malformed
// definitions resolve to now plus FallbackDelay.
func (c *Calculator) Next(def *domain.ReminderDefinition, now time.Time) time.Time {
	next, err := c.Compute(def, now)
	if err != nil {
		slog.Warn("malformed reminder definition, using fallback delay",
			slog.String("reminder_id", def.ID),
			slog.String("kind", def.Kind.String()),
			slog.Duration("fallback_delay", c.fallbackDelay),
			slog.String("error", err.Error()),
		)
		return now.Add(c.fallbackDelay)
	}
	return next
}

// NextAfterTrigger computes the value written back after def fires. The result is
// strictly later than both now and the occurrence being dispatched.
func (c *Calculator) NextAfterTrigger(def *domain.ReminderDefinition, now time.Time) time.Time {
	ref := now
	if def.NextTriggerTime.After(ref) {
		ref = def.NextTriggerTime
	}

	next := c.Next(def, ref)
	if !next.After(ref) {
		// recurring boundary tolerance handed back the occurrence itself
		next = c.Next(def, ref.Add(c.tolerance+time.Second))
	}
	return next
}

// Compute is Next without the fallback; it reports ErrMalformedDefinition.
func (c *Calculator) Compute(def *domain.ReminderDefinition, now time.Time) (time.Time, error) {
	if def == nil {
		return time.Time{}, domain.ErrMalformedDefinition
	}
	if err := def.Validate(); err != nil {
		return time.Time{}, err
	}

	switch s := def.Schedule.(type) {
	case domain.DailySchedule:
		return nextDaily(s.Time, now), nil
	case domain.WeeklySchedule:
		return nextWeekly(s, now), nil
	case domain.RecurringSchedule:
		return c.nextRecurring(s, now)
	default:
		return time.Time{}, domain.ErrMalformedDefinition
	}
}

func nextDaily(at domain.ClockTime, now time.Time) time.Time {
	candidate := at.On(now)
	if !candidate.After(now) {
		candidate = at.On(now.AddDate(0, 0, 1))
	}
	return candidate
}

func nextWeekly(s domain.WeeklySchedule, now time.Time) time.Time {
	if s.CoversAllDays() {
		return nextDaily(s.Time, now)
	}

	// offset 7 is today's weekday next week, reached only when today is the sole
	// scheduled day and its time has passed
	for offset := 0; offset <= 7; offset++ {
		day := now.AddDate(0, 0, offset)
		if !s.Has(day.Weekday()) {
			continue
		}
		candidate := s.Time.On(day)
		if candidate.After(now) {
			return candidate
		}
	}

	return nextDaily(s.Time, now)
}

func (c *Calculator) nextRecurring(s domain.RecurringSchedule, now time.Time) (time.Time, error) {
	anchor := s.Window.Start.On(now)
	end := s.Window.End.On(now)
	if !end.After(anchor) {
		return time.Time{}, domain.ErrMalformedDefinition
	}

	if now.Before(anchor) {
		return anchor, nil
	}

	interval := time.Duration(s.IntervalMinutes) * time.Minute
	if interval <= 0 || interval > 24*time.Hour {
		return time.Time{}, domain.ErrMalformedDefinition
	}
	steps := now.Sub(anchor) / interval
	candidate := anchor.Add(steps * interval)
	if now.Sub(candidate) > c.tolerance {
		candidate = candidate.Add(interval)
	}

	if candidate.After(end) {
		return s.Window.Start.On(now.AddDate(0, 0, 1)), nil
	}
	return candidate, nil
}
