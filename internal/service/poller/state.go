package poller

// State is the phase of the current poll cycle.
type State int32

const (
	StateIdle State = iota
	StateFetching
	StateFiltering
	StateDispatching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateFiltering:
		return "filtering"
	case StateDispatching:
		return "dispatching"
	}
	return "unknown"
}

type outcome int

const (
	outcomeShown outcome = iota
	outcomeBlocked
	outcomeCooldown
	outcomeConflict
	outcomeFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeShown:
		return "shown"
	case outcomeBlocked:
		return "blocked"
	case outcomeCooldown:
		return "cooldown"
	case outcomeConflict:
		return "conflict"
	case outcomeFailed:
		return "failed"
	}
	return "unknown"
}
