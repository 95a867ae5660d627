package reminderstore

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=reminderstore

// ReminderRepository persists reminder records in their wire form, so a
// schedule the engine cannot decode is still stored and served verbatim.
type ReminderRepository interface {
	FetchDue(ctx context.Context, userID string, from, to time.Time) ([]wire.ReminderRecord, error)
	List(ctx context.Context, userID string) ([]wire.ReminderRecord, error)
	// RecordTrigger applies write only if the stored trigger count still
	// equals write.PreviousTriggerCount and the time does not move backwards.
	RecordTrigger(ctx context.Context, userID string, write domain.TriggerWrite, at time.Time) (wire.ReminderRecord, error)
	Upsert(ctx context.Context, rec wire.ReminderRecord) (wire.ReminderRecord, error)
	Delete(ctx context.Context, userID, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, userID, secretHash string) error
	SecretHash(ctx context.Context, userID string) (string, error)
}
