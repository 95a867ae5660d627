package cooldown

import (
	"sync"
	"testing"
	"time"
)

func TestGuard_TryMark(t *testing.T) {
	g := NewGuard(60 * time.Second)
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	if !g.TryMark("r1", now) {
		t.Fatal("first attempt must be allowed")
	}
	if g.TryMark("r1", now.Add(59*time.Second)) {
		t.Error("attempt inside cooldown must be rejected")
	}
	if !g.TryMark("r2", now.Add(time.Second)) {
		t.Error("other reminders are independent")
	}
	if !g.TryMark("r1", now.Add(60*time.Second)) {
		t.Error("attempt after cooldown must be allowed")
	}
}

func TestGuard_Unmark(t *testing.T) {
	g := NewGuard(60 * time.Second)
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	g.TryMark("r1", now)
	g.Unmark("r1")

	if g.RecentlyAttempted("r1", now.Add(time.Second)) {
		t.Error("unmarked reminder still cooling down")
	}
	if !g.TryMark("r1", now.Add(time.Second)) {
		t.Error("unmarked reminder must be retryable")
	}
}

func TestGuard_Evict(t *testing.T) {
	g := NewGuard(60 * time.Second)
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	g.TryMark("old", now)
	g.TryMark("edge", now.Add(60*time.Second))
	g.TryMark("fresh", now.Add(170*time.Second))

	removed := g.Evict(now.Add(180 * time.Second))
	if removed != 1 {
		t.Errorf("removed %d entries, want 1", removed)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestGuard_DefaultPeriod(t *testing.T) {
	if got := NewGuard(0).Period(); got != DefaultPeriod {
		t.Errorf("Period() = %v, want %v", got, DefaultPeriod)
	}
}

func TestGuard_ConcurrentMarkAllowsOne(t *testing.T) {
	g := NewGuard(60 * time.Second)
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryMark("r1", now) {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 1 {
		t.Errorf("%d concurrent attempts allowed, want 1", allowed)
	}
}
