package trigger

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

func TestUpcoming_FirstMatchesNext(t *testing.T) {
	calc := NewCalculator()
	now := at(15, 9, 0, 0)

	defs := []*domain.ReminderDefinition{
		daily(8, 0),
		daily(21, 30),
		weekly(8, 0, time.Monday, time.Wednesday),
		weekly(7, 15, 0, 1, 2, 3, 4, 5, 6),
		recurring(90, domain.NewClockTime(8, 0), domain.NewClockTime(20, 0)),
	}

	for _, def := range defs {
		got := calc.Upcoming(def, now, 3)
		if len(got) != 3 {
			t.Fatalf("%s: got %d occurrences, want 3", def.ID, len(got))
		}
		if want := calc.Next(def, now); !got[0].Equal(want) {
			t.Errorf("%s: first upcoming %v, Next %v", def.ID, got[0], want)
		}
		for i := 1; i < len(got); i++ {
			if !got[i].After(got[i-1]) {
				t.Errorf("%s: occurrences not increasing: %v", def.ID, got)
			}
		}
	}
}

func TestUpcoming_Weekly(t *testing.T) {
	calc := NewCalculator()

	got := calc.Upcoming(weekly(8, 0, time.Monday, time.Wednesday), at(15, 9, 0, 0), 3)
	want := []time.Time{at(17, 8, 0, 0), at(22, 8, 0, 0), at(24, 8, 0, 0)}

	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUpcoming_Recurring(t *testing.T) {
	calc := NewCalculator()
	def := recurring(60, domain.NewClockTime(8, 0), domain.NewClockTime(10, 0))

	got := calc.Upcoming(def, at(15, 8, 30, 0), 4)
	want := []time.Time{at(15, 9, 0, 0), at(15, 10, 0, 0), at(16, 8, 0, 0), at(16, 9, 0, 0)}

	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUpcoming_MalformedReturnsFallback(t *testing.T) {
	calc := NewCalculator()
	now := at(15, 9, 0, 0)

	got := calc.Upcoming(&domain.ReminderDefinition{ID: "bad", Kind: domain.KindWeekly}, now, 5)
	if len(got) != 1 || !got[0].Equal(now.Add(FallbackDelay)) {
		t.Errorf("Upcoming() = %v, want single fallback", got)
	}
}
