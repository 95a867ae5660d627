package localcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

var _ domain.LocalCache = (*Cache)(nil)

// Cache is the embedded fallback store. The poller is its only writer.
type Cache struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

type Option func(*Cache)

// WithClock replaces time.Now; the location of returned instants follows it.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func WithLocation(loc *time.Location) Option {
	return func(c *Cache) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// Open opens (or creates) the sqlite database at path and migrates it.
func Open(path string, opts ...Option) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	return New(db, opts...)
}

func New(db *gorm.DB, opts ...Option) (*Cache, error) {
	if err := db.AutoMigrate(&reminderRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local cache: %w", err)
	}

	c := &Cache{
		db:  db,
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *Cache) FetchDue(ctx context.Context, cred domain.Credential, windowPast, windowFuture time.Duration) ([]*domain.ReminderDefinition, error) {
	now := c.now()
	from := now.Add(-windowPast).Unix()
	to := now.Add(windowFuture).Unix()

	var rows []reminderRow
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ? AND next_trigger_at BETWEEN ? AND ?", cred.UserID, true, from, to).
		Order("next_trigger_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}

	return c.toDomain(rows), nil
}

// RecordTrigger applies the write only when the stored trigger count still
// equals PreviousTriggerCount and the trigger time does not move backwards.
func (c *Cache) RecordTrigger(ctx context.Context, cred domain.Credential, write domain.TriggerWrite) (*domain.ReminderDefinition, error) {
	now := c.now().Unix()
	next := write.NextTriggerTime.Unix()

	result := c.db.WithContext(ctx).
		Model(&reminderRow{}).
		Where("user_id = ? AND id = ? AND trigger_count = ? AND enabled = ? AND next_trigger_at <= ?",
			cred.UserID, write.ReminderID, write.PreviousTriggerCount, true, next).
		Updates(map[string]any{
			"next_trigger_at":   next,
			"last_triggered_at": now,
			"trigger_count":     write.PreviousTriggerCount + 1,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to record trigger: %w", result.Error)
	}

	row, err := c.find(ctx, cred.UserID, write.ReminderID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: reminder %s at count %d", domain.ErrTriggerConflict, write.ReminderID, write.PreviousTriggerCount)
	}

	return row.toDomain(c.loc), nil
}

func (c *Cache) ListReminders(ctx context.Context, cred domain.Credential) ([]*domain.ReminderDefinition, error) {
	var rows []reminderRow
	err := c.db.WithContext(ctx).
		Where("user_id = ?", cred.UserID).
		Order("next_trigger_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cached reminders: %w", err)
	}
	return c.toDomain(rows), nil
}

// Mirror upserts remote definitions. Remote values overwrite whatever the
// fallback path computed locally.
func (c *Cache) Mirror(ctx context.Context, defs []*domain.ReminderDefinition) error {
	rows, err := rowsFromDomain(defs)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	err = c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to mirror reminders: %w", err)
	}
	return nil
}

// Replace swaps the user's whole cached set in one transaction.
func (c *Cache) Replace(ctx context.Context, userID string, defs []*domain.ReminderDefinition) error {
	rows, err := rowsFromDomain(defs)
	if err != nil {
		return err
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&reminderRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace cached reminders: %w", err)
	}

	slog.DebugContext(ctx, "local cache replaced",
		slog.String("user_id", userID),
		slog.Int("count", len(rows)),
	)
	return nil
}

func (c *Cache) NextUpcoming(ctx context.Context, userID string, limit int) ([]*domain.ReminderDefinition, error) {
	if limit <= 0 {
		limit = 1
	}

	var rows []reminderRow
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ? AND next_trigger_at >= ?", userID, true, c.now().Unix()).
		Order("next_trigger_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming reminders: %w", err)
	}
	return c.toDomain(rows), nil
}

// Get reads one cached definition for the foreground views.
func (c *Cache) Get(ctx context.Context, userID, id string) (*domain.ReminderDefinition, error) {
	row, err := c.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return row.toDomain(c.loc), nil
}

func (c *Cache) find(ctx context.Context, userID, id string) (reminderRow, error) {
	var row reminderRow
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reminderRow{}, fmt.Errorf("%w: %s", domain.ErrReminderNotFound, id)
	}
	if err != nil {
		return reminderRow{}, fmt.Errorf("failed to load cached reminder: %w", err)
	}
	return row, nil
}

func (c *Cache) toDomain(rows []reminderRow) []*domain.ReminderDefinition {
	defs := make([]*domain.ReminderDefinition, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, row.toDomain(c.loc))
	}
	return defs
}

func rowsFromDomain(defs []*domain.ReminderDefinition) ([]reminderRow, error) {
	rows := make([]reminderRow, 0, len(defs))
	for _, def := range defs {
		if def == nil {
			continue
		}
		row, err := rowFromDomain(def)
		if err != nil {
			return nil, fmt.Errorf("failed to encode reminder %s: %w", def.ID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
