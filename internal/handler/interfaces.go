package handler

import (
	"context"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/infra/notifycenter"
)

//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=handler

// Session is the foreground session bridge as seen by the API.
type Session interface {
	Start(ctx context.Context, userID, refreshToken string) error
	UserID() string
	SettingsChanged() bool
}

// ReminderReader is the read-only view of the local cache.
type ReminderReader interface {
	NextUpcoming(ctx context.Context, userID string, limit int) ([]*domain.ReminderDefinition, error)
	Get(ctx context.Context, userID, id string) (*domain.ReminderDefinition, error)
}

type Tray interface {
	Active(ctx context.Context, userID string) ([]notifycenter.ActiveNotification, error)
	Open(ctx context.Context, userID, dedupKey string) (string, error)
	SetPermission(ctx context.Context, userID string, granted bool) error
	Permission(ctx context.Context, userID string) (bool, error)
	Subscribe(ctx context.Context, userID string) (*notifycenter.Subscription, error)
}
