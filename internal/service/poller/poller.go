package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-engine/internal/service/cooldown"
	"github.com/KasumiMercury/primind-reminder-engine/internal/service/trigger"
)

const (
	inboxSize  = 16
	outboxSize = 64
)

type Config struct {
	Interval       time.Duration
	WindowPast     time.Duration
	WindowFuture   time.Duration
	Cooldown       time.Duration
	CredentialWait time.Duration
	CycleTimeout   time.Duration
	Location       *time.Location
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Second
	}
	if c.WindowPast <= 0 {
		c.WindowPast = 30 * time.Minute
	}
	if c.WindowFuture <= 0 {
		c.WindowFuture = 30 * time.Minute
	}
	if c.Cooldown <= 0 {
		c.Cooldown = cooldown.DefaultPeriod
	}
	if c.CredentialWait <= 0 {
		c.CredentialWait = 30 * time.Second
	}
	if c.CycleTimeout <= 0 {
		c.CycleTimeout = 2 * time.Minute
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	return c
}

type Option func(*Poller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		p.now = now
	}
}

// Poller is the background actor. It owns the cooldown guard and is the only
// writer of the local cache. Commands arrive on Inbox and events leave on
// Events.
type Poller struct {
	remote   domain.ReminderStore
	local    domain.LocalCache
	notifier domain.Notifier
	recorder domain.CycleRecorder
	metrics  *metrics.EngineMetrics
	calc     *trigger.Calculator
	guard    *cooldown.Guard
	cfg      Config
	now      func() time.Time

	inbox  chan domain.Command
	outbox chan domain.Event

	cycleMu     sync.Mutex
	state       atomic.Int32
	pendingSync atomic.Bool

	credMu sync.RWMutex
	cred   *domain.Credential
}

func New(
	remote domain.ReminderStore,
	local domain.LocalCache,
	notifier domain.Notifier,
	recorder domain.CycleRecorder,
	engineMetrics *metrics.EngineMetrics,
	cfg Config,
	opts ...Option,
) *Poller {
	cfg = cfg.withDefaults()

	p := &Poller{
		remote:   remote,
		local:    local,
		notifier: notifier,
		recorder: recorder,
		metrics:  engineMetrics,
		calc:     trigger.NewCalculator(),
		guard:    cooldown.NewGuard(cfg.Cooldown),
		cfg:      cfg,
		now:      time.Now,
		inbox:    make(chan domain.Command, inboxSize),
		outbox:   make(chan domain.Event, outboxSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Inbox() chan<- domain.Command {
	return p.inbox
}

func (p *Poller) Events() <-chan domain.Event {
	return p.outbox
}

func (p *Poller) State() State {
	return State(p.state.Load())
}

func (p *Poller) setState(s State) {
	p.state.Store(int32(s))
}

func (p *Poller) clock() time.Time {
	return p.now().In(p.cfg.Location)
}

func (p *Poller) credential() (domain.Credential, bool) {
	p.credMu.RLock()
	defer p.credMu.RUnlock()

	if p.cred == nil {
		return domain.Credential{}, false
	}
	return *p.cred, true
}

func (p *Poller) setCredential(userID, token string) {
	p.credMu.Lock()
	defer p.credMu.Unlock()

	p.cred = &domain.Credential{UserID: userID, Token: token}
}

// refreshToken keeps the held user and replaces only the token.
func (p *Poller) refreshToken(token string) bool {
	p.credMu.Lock()
	defer p.credMu.Unlock()

	if p.cred == nil {
		return false
	}
	p.cred = &domain.Credential{UserID: p.cred.UserID, Token: token}
	return true
}

// Run drives cycles from the ticker and the inbox until ctx is cancelled.
// A cycle that is in flight when ctx ends still completes its writes.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "poller started",
		slog.Duration("interval", p.cfg.Interval),
		slog.Duration("window_past", p.cfg.WindowPast),
		slog.Duration("window_future", p.cfg.WindowFuture),
		slog.Duration("cooldown", p.cfg.Cooldown),
	)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "poller stopped")
			return nil
		case <-ticker.C:
			p.runDetached(ctx)
		case cmd := <-p.inbox:
			if p.handleCommand(ctx, cmd) {
				p.runDetached(ctx)
			}
		}
	}
}

// handleCommand applies cmd and reports whether it asks for an immediate cycle.
func (p *Poller) handleCommand(ctx context.Context, cmd domain.Command) bool {
	switch c := cmd.(type) {
	case domain.SetCredential:
		p.setCredential(c.UserID, c.Token)
		slog.InfoContext(ctx, "session credential set", slog.String("user_id", c.UserID))
		return true
	case domain.RefreshCredential:
		if !p.refreshToken(c.Token) {
			slog.WarnContext(ctx, "credential refresh ignored without a session")
			return false
		}
		slog.DebugContext(ctx, "session credential refreshed")
		return true
	case domain.SettingsChanged:
		p.pendingSync.Store(true)
		return true
	default:
		slog.WarnContext(ctx, "unknown command ignored", slog.Any("command", cmd))
		return false
	}
}

func (p *Poller) runDetached(parent context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), p.cfg.CycleTimeout)
	defer cancel()

	// One extra pass covers a settings change that arrived mid-cycle.
	for range 2 {
		if _, err := p.RunCycle(ctx); err != nil && !errors.Is(err, domain.ErrNoSession) {
			slog.WarnContext(ctx, "poll cycle failed", slog.String("error", err.Error()))
		}
		if !p.pendingSync.Load() || parent.Err() != nil {
			return
		}
	}
}

// awaitRefresh tells the foreground the credential expired and waits for a
// new one. Settings changes received meanwhile are kept for the next cycle.
func (p *Poller) awaitRefresh(ctx context.Context, userID string) bool {
	p.emit(ctx, domain.CredentialExpired{UserID: userID})

	timer := time.NewTimer(p.cfg.CredentialWait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			slog.WarnContext(ctx, "credential refresh timed out",
				slog.String("user_id", userID),
				slog.Duration("waited", p.cfg.CredentialWait),
			)
			return false
		case cmd := <-p.inbox:
			switch c := cmd.(type) {
			case domain.RefreshCredential:
				if p.refreshToken(c.Token) {
					return true
				}
			case domain.SetCredential:
				p.setCredential(c.UserID, c.Token)
				return true
			case domain.SettingsChanged:
				p.pendingSync.Store(true)
			}
		}
	}
}

func (p *Poller) emit(ctx context.Context, event domain.Event) {
	select {
	case p.outbox <- event:
	case <-ctx.Done():
		slog.WarnContext(ctx, "event dropped", slog.String("type", string(event.Type())))
	}
}
