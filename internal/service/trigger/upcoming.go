package trigger

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Upcoming lists the next n trigger instants after from. Daily and weekly rules
// are expanded as RFC 5545 recurrences; recurring intervals step the calculator.
func (c *Calculator) Upcoming(def *domain.ReminderDefinition, from time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	if err := def.Validate(); err != nil {
		return []time.Time{c.Next(def, from)}
	}

	var rule *rrule.RRule
	switch s := def.Schedule.(type) {
	case domain.DailySchedule:
		rule = dailyRule(s.Time, from)
	case domain.WeeklySchedule:
		if s.CoversAllDays() {
			rule = dailyRule(s.Time, from)
		} else {
			rule = weeklyRule(s, from)
		}
	}

	out := make([]time.Time, 0, n)
	if rule == nil {
		ref := from
		for len(out) < n {
			next := c.Next(def, ref)
			out = append(out, next)
			ref = next.Add(c.tolerance + time.Second)
		}
		return out
	}

	ref := from
	for len(out) < n {
		next := rule.After(ref, false)
		if next.IsZero() {
			break
		}
		out = append(out, next)
		ref = next
	}
	return out
}

func dailyRule(at domain.ClockTime, from time.Time) *rrule.RRule {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Dtstart:  startOfDay(from),
		Byhour:   []int{at.Hour},
		Byminute: []int{at.Minute},
		Bysecond: []int{0},
	})
	if err != nil {
		return nil
	}
	return rule
}

func weeklyRule(s domain.WeeklySchedule, from time.Time) *rrule.RRule {
	days := make([]rrule.Weekday, 0, len(s.DaysOfWeek))
	for _, d := range s.DaysOfWeek {
		days = append(days, rruleWeekdays[d])
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   startOfDay(from),
		Byweekday: days,
		Byhour:    []int{s.Time.Hour},
		Byminute:  []int{s.Time.Minute},
		Bysecond:  []int{0},
	})
	if err != nil {
		return nil
	}
	return rule
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
