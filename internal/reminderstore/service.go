package reminderstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/service/trigger"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

const maxWindow = 24 * time.Hour

type ServiceConfig struct {
	Location          *time.Location
	AllowRegistration bool
}

// Service is the authoritative reminder store: time-windowed reads, the
// conditional trigger write, settings replacement and credential issuance.
type Service struct {
	reminders         ReminderRepository
	users             UserRepository
	tokens            *TokenIssuer
	calc              *trigger.Calculator
	loc               *time.Location
	allowRegistration bool
	now               func() time.Time
}

func NewService(reminders ReminderRepository, users UserRepository, tokens *TokenIssuer, cfg ServiceConfig) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		reminders:         reminders,
		users:             users,
		tokens:            tokens,
		calc:              trigger.NewCalculator(),
		loc:               loc,
		allowRegistration: cfg.AllowRegistration,
		now:               time.Now,
	}
}

func (s *Service) FetchDue(ctx context.Context, userID string, windowPast, windowFuture time.Duration) ([]wire.ReminderRecord, error) {
	if windowPast < 0 || windowFuture < 0 || windowPast > maxWindow || windowFuture > maxWindow {
		return nil, ErrInvalidWindow
	}

	now := s.now()
	return s.reminders.FetchDue(ctx, userID, now.Add(-windowPast), now.Add(windowFuture))
}

func (s *Service) List(ctx context.Context, userID string) ([]wire.ReminderRecord, error) {
	return s.reminders.List(ctx, userID)
}

func (s *Service) RecordTrigger(ctx context.Context, userID string, write domain.TriggerWrite) (wire.ReminderRecord, error) {
	rec, err := s.reminders.RecordTrigger(ctx, userID, write, s.now())
	if err != nil {
		return wire.ReminderRecord{}, err
	}

	slog.InfoContext(ctx, "trigger recorded",
		slog.String("user_id", userID),
		slog.String("reminder_id", write.ReminderID),
		slog.Int64("trigger_count", rec.TriggerCount),
		slog.Time("next_trigger_time", write.NextTriggerTime),
	)
	return rec, nil
}

// Upsert fully replaces the settings of one reminder. A missing next trigger
// time on an enabled reminder is computed here.
func (s *Service) Upsert(ctx context.Context, userID, id string, rec wire.ReminderRecord) (wire.ReminderRecord, error) {
	if rec.ID != "" && rec.ID != id {
		return wire.ReminderRecord{}, ErrIDMismatch
	}
	rec.ID = id
	rec.UserID = userID

	def, err := rec.ToDomain()
	if err != nil {
		return wire.ReminderRecord{}, err
	}
	if err := def.Validate(); err != nil {
		return wire.ReminderRecord{}, err
	}

	now := s.now()
	rec.Schedule = wire.ScheduleFromDomain(def.Schedule)
	rec.UpdatedAt = now
	if rec.NextTriggerTime == nil && rec.Enabled {
		next := s.calc.Next(def, now.In(s.loc))
		rec.NextTriggerTime = &next
	}

	stored, err := s.reminders.Upsert(ctx, rec)
	if err != nil {
		return wire.ReminderRecord{}, err
	}

	slog.InfoContext(ctx, "reminder saved",
		slog.String("user_id", userID),
		slog.String("reminder_id", id),
		slog.String("kind", rec.Kind),
		slog.Bool("enabled", rec.Enabled),
	)
	return stored, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.reminders.Delete(ctx, userID, id)
}

// Register creates a user and returns its refresh secret. The secret is
// shown exactly once.
func (s *Service) Register(ctx context.Context, userID string) (string, error) {
	if !s.allowRegistration {
		return "", ErrRegistrationDisabled
	}

	secret, hash, err := NewRefreshSecret()
	if err != nil {
		return "", err
	}
	if err := s.users.Create(ctx, userID, hash); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "user registered", slog.String("user_id", userID))
	return secret, nil
}

func (s *Service) IssueToken(ctx context.Context, userID, refreshToken string) (string, time.Time, error) {
	hash, err := s.users.SecretHash(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", time.Time{}, ErrInvalidRefreshToken
		}
		return "", time.Time{}, err
	}
	if err := checkRefreshSecret(hash, refreshToken); err != nil {
		return "", time.Time{}, fmt.Errorf("refresh for %s rejected: %w", userID, err)
	}
	return s.tokens.Sign(userID)
}

func (s *Service) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}
