package reminderstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

const reminderColumns = `id, user_id, kind, enabled, schedule, next_trigger_time, last_triggered,
	trigger_count, title, body, nav_target, category, updated_at`

const uniqueViolation = "23505"

var (
	_ ReminderRepository = (*PostgresReminders)(nil)
	_ UserRepository     = (*PostgresUsers)(nil)
)

type PostgresReminders struct {
	db *DB
}

func NewPostgresReminders(db *DB) *PostgresReminders {
	return &PostgresReminders{db: db}
}

func scanReminder(row pgx.Row) (wire.ReminderRecord, error) {
	var rec wire.ReminderRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Kind, &rec.Enabled, &rec.Schedule,
		&rec.NextTriggerTime, &rec.LastTriggered, &rec.TriggerCount,
		&rec.Payload.Title, &rec.Payload.Body, &rec.Payload.NavTarget, &rec.Payload.Category,
		&rec.UpdatedAt,
	)
	return rec, err
}

func collectReminders(rows pgx.Rows) ([]wire.ReminderRecord, error) {
	defer rows.Close()

	records := make([]wire.ReminderRecord, 0)
	for rows.Next() {
		rec, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresReminders) FetchDue(ctx context.Context, userID string, from, to time.Time) ([]wire.ReminderRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+`
		 FROM reminders
		 WHERE user_id = $1 AND enabled AND next_trigger_time BETWEEN $2 AND $3
		 ORDER BY next_trigger_time ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}

	records, err := collectReminders(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan due reminders: %w", err)
	}
	return records, nil
}

func (r *PostgresReminders) List(ctx context.Context, userID string) ([]wire.ReminderRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+`
		 FROM reminders WHERE user_id = $1
		 ORDER BY next_trigger_time ASC NULLS LAST, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}

	records, err := collectReminders(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reminders: %w", err)
	}
	return records, nil
}

func (r *PostgresReminders) RecordTrigger(ctx context.Context, userID string, write domain.TriggerWrite, at time.Time) (wire.ReminderRecord, error) {
	rec, err := scanReminder(r.db.Pool.QueryRow(ctx,
		`UPDATE reminders
		 SET next_trigger_time = $4, last_triggered = $5, trigger_count = trigger_count + 1, updated_at = $5
		 WHERE user_id = $1 AND id = $2 AND trigger_count = $3 AND enabled
		   AND (next_trigger_time IS NULL OR next_trigger_time <= $4)
		 RETURNING `+reminderColumns,
		userID, write.ReminderID, write.PreviousTriggerCount, write.NextTriggerTime, at,
	))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return wire.ReminderRecord{}, fmt.Errorf("failed to record trigger: %w", err)
	}

	var exists bool
	err = r.db.Pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM reminders WHERE user_id = $1 AND id = $2)",
		userID, write.ReminderID,
	).Scan(&exists)
	if err != nil {
		return wire.ReminderRecord{}, fmt.Errorf("failed to check reminder: %w", err)
	}
	if !exists {
		return wire.ReminderRecord{}, domain.ErrReminderNotFound
	}
	return wire.ReminderRecord{}, domain.ErrTriggerConflict
}

// Upsert replaces the settings-owned fields of a reminder. Trigger history
// (count and last trigger) is kept on update.
func (r *PostgresReminders) Upsert(ctx context.Context, rec wire.ReminderRecord) (wire.ReminderRecord, error) {
	stored, err := scanReminder(r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (user_id, id, kind, enabled, schedule, next_trigger_time,
			title, body, nav_target, category, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (user_id, id) DO UPDATE SET
			kind = EXCLUDED.kind,
			enabled = EXCLUDED.enabled,
			schedule = EXCLUDED.schedule,
			next_trigger_time = EXCLUDED.next_trigger_time,
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			nav_target = EXCLUDED.nav_target,
			category = EXCLUDED.category,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+reminderColumns,
		rec.UserID, rec.ID, rec.Kind, rec.Enabled, rec.Schedule, rec.NextTriggerTime,
		rec.Payload.Title, rec.Payload.Body, rec.Payload.NavTarget, rec.Payload.Category, rec.UpdatedAt,
	))
	if err != nil {
		return wire.ReminderRecord{}, fmt.Errorf("failed to upsert reminder: %w", err)
	}
	return stored, nil
}

func (r *PostgresReminders) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

type PostgresUsers struct {
	db *DB
}

func NewPostgresUsers(db *DB) *PostgresUsers {
	return &PostgresUsers{db: db}
}

func (r *PostgresUsers) Create(ctx context.Context, userID, secretHash string) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO users (user_id, secret_hash) VALUES ($1, $2)`,
		userID, secretHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresUsers) SecretHash(ctx context.Context, userID string) (string, error) {
	var hash string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT secret_hash FROM users WHERE user_id = $1`,
		userID,
	).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	return hash, nil
}
