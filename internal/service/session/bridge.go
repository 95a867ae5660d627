package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/metrics"
)

//go:generate mockgen -source=bridge.go -destination=bridge_mock.go -package=session

const (
	triggerStart     = "start"
	triggerScheduled = "scheduled"
	triggerExpired   = "expired"

	defaultRefreshSchedule = "@every 50m"
	mintTimeout            = 20 * time.Second
)

var ErrMissingIdentity = errors.New("user id and refresh token are required")

// CredentialMinter turns the long-lived refresh secret into an access token.
type CredentialMinter interface {
	Mint(ctx context.Context, userID, refreshToken string) (string, time.Time, error)
}

type Config struct {
	RefreshSchedule string
	Location        *time.Location
}

// Bridge is the foreground half of the engine. It holds the refresh secret,
// pushes credentials into the poller and fans poller events out to views.
type Bridge struct {
	minter      CredentialMinter
	inbox       chan<- domain.Command
	events      <-chan domain.Event
	broadcaster domain.Broadcaster
	metrics     *metrics.EngineMetrics
	cron        *cron.Cron
	schedule    string

	mu           sync.RWMutex
	userID       string
	refreshToken string
	expiresAt    time.Time

	// refreshMu keeps a scheduled refresh and a reactive one from minting twice.
	refreshMu sync.Mutex
}

func NewBridge(
	minter CredentialMinter,
	inbox chan<- domain.Command,
	events <-chan domain.Event,
	broadcaster domain.Broadcaster,
	engineMetrics *metrics.EngineMetrics,
	cfg Config,
) *Bridge {
	if cfg.RefreshSchedule == "" {
		cfg.RefreshSchedule = defaultRefreshSchedule
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Bridge{
		minter:      minter,
		inbox:       inbox,
		events:      events,
		broadcaster: broadcaster,
		metrics:     engineMetrics,
		cron:        cron.New(cron.WithLocation(cfg.Location)),
		schedule:    cfg.RefreshSchedule,
	}
}

// Start opens a session: it mints a credential for userID and hands it to the
// poller, which then runs an immediate cycle.
func (b *Bridge) Start(ctx context.Context, userID, refreshToken string) error {
	if userID == "" || refreshToken == "" {
		return ErrMissingIdentity
	}

	token, expiresAt, err := b.mint(ctx, triggerStart, userID, refreshToken)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.userID = userID
	b.refreshToken = refreshToken
	b.expiresAt = expiresAt
	b.mu.Unlock()

	if err := b.send(ctx, domain.SetCredential{UserID: userID, Token: token}); err != nil {
		return err
	}

	slog.InfoContext(ctx, "session started",
		slog.String("user_id", userID),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

// UserID returns the session user, or "" before Start.
func (b *Bridge) UserID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.userID
}

func (b *Bridge) ExpiresAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expiresAt
}

// SettingsChanged asks the poller for an immediate cycle and cache sync. It
// never blocks; it reports false when the inbox is full, in which case a
// queued cycle will pick the change up.
func (b *Bridge) SettingsChanged() bool {
	select {
	case b.inbox <- domain.SettingsChanged{}:
		return true
	default:
		return false
	}
}

// Run schedules the proactive refresh and consumes poller events until ctx
// is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	if _, err := b.cron.AddFunc(b.schedule, func() {
		if err := b.Refresh(ctx, triggerScheduled); err != nil && !errors.Is(err, domain.ErrNoSession) {
			slog.WarnContext(ctx, "scheduled credential refresh failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule credential refresh %q: %w", b.schedule, err)
	}

	b.cron.Start()
	defer func() {
		<-b.cron.Stop().Done()
	}()

	slog.InfoContext(ctx, "session bridge started", slog.String("refresh_schedule", b.schedule))

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "session bridge stopped")
			return nil
		case ev, ok := <-b.events:
			if !ok {
				return nil
			}
			b.handleEvent(ctx, ev)
		}
	}
}

func (b *Bridge) handleEvent(ctx context.Context, ev domain.Event) {
	switch e := ev.(type) {
	case domain.CredentialExpired:
		slog.InfoContext(ctx, "poller reported expired credential", slog.String("user_id", e.UserID))
		if err := b.Refresh(ctx, triggerExpired); err != nil {
			slog.WarnContext(ctx, "reactive credential refresh failed", slog.String("error", err.Error()))
		}
	case domain.NotificationShown, domain.NotificationBlocked:
		b.forward(ctx, ev)
	default:
		slog.WarnContext(ctx, "unknown poller event ignored", slog.String("type", string(ev.Type())))
	}
}

func (b *Bridge) forward(ctx context.Context, ev domain.Event) {
	userID := b.UserID()
	if b.broadcaster == nil || userID == "" {
		return
	}
	if err := b.broadcaster.Broadcast(ctx, userID, ev); err != nil {
		slog.WarnContext(ctx, "failed to broadcast poller event",
			slog.String("type", string(ev.Type())),
			slog.String("error", err.Error()),
		)
	}
}

// Refresh mints a new access token for the current session and pushes it to
// the poller.
func (b *Bridge) Refresh(ctx context.Context, trigger string) error {
	b.refreshMu.Lock()
	defer b.refreshMu.Unlock()

	b.mu.RLock()
	userID, refreshToken := b.userID, b.refreshToken
	b.mu.RUnlock()

	if userID == "" {
		return domain.ErrNoSession
	}

	token, expiresAt, err := b.mint(ctx, trigger, userID, refreshToken)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.expiresAt = expiresAt
	b.mu.Unlock()

	return b.send(ctx, domain.RefreshCredential{Token: token})
}

func (b *Bridge) mint(ctx context.Context, trigger, userID, refreshToken string) (string, time.Time, error) {
	mintCtx, cancel := context.WithTimeout(ctx, mintTimeout)
	defer cancel()

	token, expiresAt, err := b.minter.Mint(mintCtx, userID, refreshToken)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if b.metrics != nil {
		b.metrics.RecordCredentialRefresh(ctx, trigger, outcome)
	}

	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to mint credential for %s: %w", userID, err)
	}
	return token, expiresAt, nil
}

func (b *Bridge) send(ctx context.Context, cmd domain.Command) error {
	select {
	case b.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
