package notifycenter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/tracing"
)

const (
	// DefaultNamespace prefixes every key the center writes.
	DefaultNamespace = "reminder"

	activeTTL = 24 * time.Hour // unacknowledged notifications expire after a day

	permissionGranted = "granted"
	permissionDenied  = "denied"
)

var (
	_ domain.Notifier    = (*Center)(nil)
	_ domain.Broadcaster = (*Center)(nil)
)

type notificationRecord struct {
	DedupKey   string    `json:"dedup_key"`
	ReminderID string    `json:"reminder_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	NavTarget  string    `json:"nav_target"`
	Category   string    `json:"category,omitempty"`
	ShownAt    time.Time `json:"shown_at"`
}

// ActiveNotification is an entry currently present in the user's tray.
type ActiveNotification struct {
	DedupKey   string    `json:"dedup_key"`
	ReminderID string    `json:"reminder_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	NavTarget  string    `json:"nav_target"`
	Category   string    `json:"category,omitempty"`
	ShownAt    time.Time `json:"shown_at"`
}

// Center is the per-user notification tray kept in redis. Entries are keyed
// by dedup key so a repeated occurrence replaces instead of stacking.
type Center struct {
	client    *redis.Client
	namespace string
	now       func() time.Time
}

type Option func(*Center)

// WithNamespace lets several engines share one redis without seeing each
// other's trays.
func WithNamespace(namespace string) Option {
	return func(c *Center) {
		if namespace != "" {
			c.namespace = namespace
		}
	}
}

func NewCenter(client *redis.Client, opts ...Option) *Center {
	c := &Center{
		client:    client,
		namespace: DefaultNamespace,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Center) activeKey(userID string) string {
	return c.namespace + ":notify:active:" + userID
}

func (c *Center) permissionKey(userID string) string {
	return c.namespace + ":notify:permission:" + userID
}

func (c *Center) eventsChannel(userID string) string {
	return c.namespace + ":notify:events:" + userID
}

func (c *Center) Show(ctx context.Context, n domain.Notification) (domain.ShowResult, error) {
	key := c.activeKey(n.UserID)

	ctx, span := tracing.StartRedisOperationSpan(ctx, "show", key)
	defer span.End()

	granted, err := c.Permission(ctx, n.UserID)
	if err != nil {
		tracing.RecordResult(span, err)
		return domain.ShowResultError, err
	}
	if !granted {
		tracing.RecordResult(span, nil)
		return domain.ShowResultBlocked, nil
	}

	data, err := json.Marshal(notificationRecord{
		DedupKey:   n.DedupKey,
		ReminderID: n.ReminderID,
		Title:      n.Payload.Title,
		Body:       n.Payload.Body,
		NavTarget:  n.Payload.NavTarget,
		Category:   string(n.Payload.Category),
		ShownAt:    c.now(),
	})
	if err != nil {
		return domain.ShowResultError, ErrInvalidNotificationData
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, n.DedupKey, data)
	pipe.Expire(ctx, key, activeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		tracing.RecordResult(span, err)
		return domain.ShowResultError, fmt.Errorf("failed to write notification: %w", err)
	}

	present, err := c.client.HExists(ctx, key, n.DedupKey).Result()
	if err != nil {
		tracing.RecordResult(span, err)
		return domain.ShowResultError, fmt.Errorf("failed to verify notification: %w", err)
	}
	tracing.RecordResult(span, nil)

	if !present {
		slog.WarnContext(ctx, "notification missing from active list after show",
			slog.String("user_id", n.UserID),
			slog.String("dedup_key", n.DedupKey),
		)
		return domain.ShowResultBlocked, nil
	}

	return domain.ShowResultShown, nil
}

func (c *Center) Active(ctx context.Context, userID string) ([]ActiveNotification, error) {
	entries, err := c.client.HGetAll(ctx, c.activeKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	active := make([]ActiveNotification, 0, len(entries))
	for key, raw := range entries {
		var record notificationRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			slog.WarnContext(ctx, "skipping unreadable notification",
				slog.String("user_id", userID),
				slog.String("dedup_key", key),
			)
			continue
		}
		active = append(active, ActiveNotification(record))
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].ShownAt.Before(active[j].ShownAt)
	})

	return active, nil
}

// Open acknowledges a notification and returns the in-app route it carries.
func (c *Center) Open(ctx context.Context, userID, dedupKey string) (string, error) {
	key := c.activeKey(userID)

	raw, err := c.client.HGet(ctx, key, dedupKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotificationNotFound
		}
		return "", err
	}

	var record notificationRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return "", ErrInvalidNotificationData
	}

	if err := c.client.HDel(ctx, key, dedupKey).Err(); err != nil {
		return "", err
	}

	return record.NavTarget, nil
}

func (c *Center) SetPermission(ctx context.Context, userID string, granted bool) error {
	value := permissionDenied
	if granted {
		value = permissionGranted
	}
	return c.client.Set(ctx, c.permissionKey(userID), value, 0).Err()
}

// Permission reports whether notifications may be shown. Unset means granted.
func (c *Center) Permission(ctx context.Context, userID string) (bool, error) {
	value, err := c.client.Get(ctx, c.permissionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, err
	}
	return value != permissionDenied, nil
}
