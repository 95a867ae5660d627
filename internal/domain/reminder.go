package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind selects which schedule variant a ReminderDefinition carries.
type Kind string

const (
	KindDaily     Kind = "daily"
	KindWeekly    Kind = "weekly"
	KindRecurring Kind = "recurring"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindDaily, KindWeekly, KindRecurring:
		return true
	}
	return false
}

// Category is the user-facing reminder family rendered by the views.
type Category string

const (
	CategoryMeal         Category = "meal"
	CategoryHydration    Category = "hydration"
	CategoryWorkout      Category = "workout"
	CategoryWeightLog    Category = "weight_log"
	CategoryStreakCheck  Category = "streak_check"
	CategoryDailySummary Category = "daily_summary"
)

// ClockTime is a wall-clock hour:minute without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("%w: clock time %q", ErrMalformedDefinition, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: clock hour %q", ErrMalformedDefinition, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: clock minute %q", ErrMalformedDefinition, s)
	}

	ct := ClockTime{Hour: hour, Minute: minute}
	if !ct.Valid() {
		return ClockTime{}, fmt.Errorf("%w: clock time out of range %q", ErrMalformedDefinition, s)
	}

	return ct, nil
}

func (c ClockTime) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant at this clock time on the calendar date of day, in day's location.
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

// Schedule is the kind-specific payload of a ReminderDefinition.
// Exactly one of DailySchedule, WeeklySchedule, RecurringSchedule.
type Schedule interface {
	Kind() Kind
	isSchedule()
}

type DailySchedule struct {
	Time ClockTime
}

func (DailySchedule) Kind() Kind { return KindDaily }
func (DailySchedule) isSchedule() {}

type WeeklySchedule struct {
	Time       ClockTime
	DaysOfWeek []time.Weekday
}

func (WeeklySchedule) Kind() Kind { return KindWeekly }
func (WeeklySchedule) isSchedule() {}

// CoversAllDays reports whether every weekday is present, making the schedule equivalent to daily.
func (w WeeklySchedule) CoversAllDays() bool {
	var seen [7]bool
	for _, d := range w.DaysOfWeek {
		if d >= time.Sunday && d <= time.Saturday {
			seen[d] = true
		}
	}
	for _, ok := range seen {
		if !ok {
			return false
		}
	}
	return true
}

// Has reports whether day is one of the scheduled weekdays.
func (w WeeklySchedule) Has(day time.Weekday) bool {
	for _, d := range w.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

type ActiveWindow struct {
	Start ClockTime
	End   ClockTime
}

// MaxIntervalMinutes bounds a recurring interval to one day.
const MaxIntervalMinutes = 24 * 60

type RecurringSchedule struct {
	IntervalMinutes int
	Window          ActiveWindow
}

func (RecurringSchedule) Kind() Kind { return KindRecurring }
func (RecurringSchedule) isSchedule() {}

type Payload struct {
	Title     string
	Body      string
	NavTarget string
	Category  Category
}

// ReminderDefinition is one scheduled rule for one user.
// Schedule is nil when the stored record could not be decoded.
type ReminderDefinition struct {
	ID              string
	UserID          string
	Kind            Kind
	Enabled         bool
	Schedule        Schedule
	NextTriggerTime time.Time
	LastTriggered   *time.Time
	TriggerCount    int64
	Payload         Payload
	UpdatedAt       time.Time
}

// Validate reports why a definition cannot be scheduled, or nil.
func (d *ReminderDefinition) Validate() error {
	if d.Schedule == nil {
		return fmt.Errorf("%w: missing schedule", ErrMalformedDefinition)
	}
	if d.Schedule.Kind() != d.Kind {
		return fmt.Errorf("%w: kind %q carries %q schedule", ErrMalformedDefinition, d.Kind, d.Schedule.Kind())
	}

	switch s := d.Schedule.(type) {
	case DailySchedule:
		if !s.Time.Valid() {
			return fmt.Errorf("%w: daily time %s", ErrMalformedDefinition, s.Time)
		}
	case WeeklySchedule:
		if !s.Time.Valid() {
			return fmt.Errorf("%w: weekly time %s", ErrMalformedDefinition, s.Time)
		}
		if len(s.DaysOfWeek) == 0 {
			return fmt.Errorf("%w: weekly schedule without days", ErrMalformedDefinition)
		}
		for _, day := range s.DaysOfWeek {
			if day < time.Sunday || day > time.Saturday {
				return fmt.Errorf("%w: weekday %d", ErrMalformedDefinition, day)
			}
		}
	case RecurringSchedule:
		if s.IntervalMinutes <= 0 || s.IntervalMinutes > MaxIntervalMinutes {
			return fmt.Errorf("%w: interval %d minutes", ErrMalformedDefinition, s.IntervalMinutes)
		}
		if !s.Window.Start.Valid() || !s.Window.End.Valid() {
			return fmt.Errorf("%w: active window %s-%s", ErrMalformedDefinition, s.Window.Start, s.Window.End)
		}
	}

	return nil
}

// DedupKey identifies one occurrence of a reminder. A retried display of the same
// occurrence carries the same key so the tray replaces instead of stacking.
func DedupKey(def *ReminderDefinition) string {
	return def.ID + ":" + strconv.FormatInt(def.NextTriggerTime.Unix(), 10)
}
