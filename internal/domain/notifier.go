package domain

import "context"

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=domain

type ShowResult string

const (
	ShowResultShown   ShowResult = "shown"
	ShowResultBlocked ShowResult = "blocked"
	ShowResultError   ShowResult = "error"
)

func (r ShowResult) String() string {
	return string(r)
}

// Notification is a single displayed occurrence of a reminder.
type Notification struct {
	UserID     string
	ReminderID string
	DedupKey   string
	Payload    Payload
}

type Notifier interface {
	Show(ctx context.Context, n Notification) (ShowResult, error)
}

// Broadcaster fans an event out to every open foreground view.
type Broadcaster interface {
	Broadcast(ctx context.Context, userID string, event Event) error
}
