package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=domain

// Credential is the bearer identity used for store calls.
type Credential struct {
	UserID string
	Token  string
}

// TriggerWrite is the conditional update recorded after a trigger.
type TriggerWrite struct {
	ReminderID           string
	NextTriggerTime      time.Time
	PreviousTriggerCount int64
}

// ReminderStore is the read/write surface the poller dispatches against.
// RecordTrigger returns ErrCredentialExpired, ErrTriggerConflict or a wrapped
// ErrTransientNetwork on failure.
type ReminderStore interface {
	FetchDue(ctx context.Context, cred Credential, windowPast, windowFuture time.Duration) ([]*ReminderDefinition, error)
	RecordTrigger(ctx context.Context, cred Credential, write TriggerWrite) (*ReminderDefinition, error)
	ListReminders(ctx context.Context, cred Credential) ([]*ReminderDefinition, error)
}

// LocalCache mirrors reminder definitions for use while the remote store is unreachable.
type LocalCache interface {
	ReminderStore
	Mirror(ctx context.Context, defs []*ReminderDefinition) error
	Replace(ctx context.Context, userID string, defs []*ReminderDefinition) error
	NextUpcoming(ctx context.Context, userID string, limit int) ([]*ReminderDefinition, error)
}
