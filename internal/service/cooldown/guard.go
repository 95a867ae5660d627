package cooldown

import (
	"sync"
	"time"
)

// DefaultPeriod is the suppression interval between two dispatch attempts of one reminder.
const DefaultPeriod = 60 * time.Second

// Guard remembers when each reminder was last attempted so that overlapping
// poll cycles do not dispatch it twice. A Guard belongs to a single poller.
type Guard struct {
	mu       sync.Mutex
	period   time.Duration
	attempts map[string]time.Time
}

func NewGuard(period time.Duration) *Guard {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Guard{
		period:   period,
		attempts: make(map[string]time.Time),
	}
}

// TryMark marks reminderID as attempted at now unless it was already attempted
// within the cooldown period. It reports whether the caller may proceed.
func (g *Guard) TryMark(reminderID string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.attempts[reminderID]; ok && now.Sub(last) < g.period {
		return false
	}
	g.attempts[reminderID] = now
	return true
}

// RecentlyAttempted reports whether reminderID is still cooling down at now.
func (g *Guard) RecentlyAttempted(reminderID string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.attempts[reminderID]
	return ok && now.Sub(last) < g.period
}

// Unmark forgets an attempt so the reminder is eligible on the next cycle.
func (g *Guard) Unmark(reminderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.attempts, reminderID)
}

// Evict drops entries older than twice the period and returns how many were removed.
func (g *Guard) Evict(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for id, last := range g.attempts {
		if now.Sub(last) > 2*g.period {
			delete(g.attempts, id)
			removed++
		}
	}
	return removed
}

func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.attempts)
}

func (g *Guard) Period() time.Duration {
	return g.period
}
