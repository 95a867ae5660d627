package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/tracing"
)

// RunCycle performs one Fetching → Filtering → Dispatching pass. Concurrent
// callers are serialized.
func (p *Poller) RunCycle(ctx context.Context) (domain.CycleRecord, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()
	defer p.setState(StateIdle)

	cred, ok := p.credential()
	if !ok {
		return domain.CycleRecord{Source: domain.CycleSourceNone}, domain.ErrNoSession
	}

	started := p.clock()
	record := domain.CycleRecord{
		CycleID:   uuid.NewString(),
		UserID:    cred.UserID,
		StartedAt: started,
		Source:    domain.CycleSourceNone,
	}

	ctx, span := tracing.StartPollCycleSpan(ctx, record.CycleID, cred.UserID, started)
	defer span.End()

	if p.pendingSync.Swap(false) {
		p.syncSettings(ctx, cred)
	}

	p.setState(StateFetching)
	defs, source, err := p.fetch(ctx)
	record.Source = source
	if err != nil {
		p.finish(ctx, &record)
		tracing.RecordPollCycleResult(span, string(source), 0, 0, 0, err)
		return record, err
	}
	record.FetchedCount = len(defs)

	p.setState(StateFiltering)
	now := p.clock()
	if evicted := p.guard.Evict(now); evicted > 0 {
		slog.DebugContext(ctx, "cooldown entries evicted", slog.Int("count", evicted))
	}
	due := dueNow(defs, now)

	p.setState(StateDispatching)
	store := p.remote
	if source == domain.CycleSourceLocal {
		store = p.local
	}

	for _, def := range due {
		if ctx.Err() != nil {
			break
		}

		switch p.dispatch(ctx, store, source, def) {
		case outcomeShown:
			record.DispatchedCount++
		case outcomeBlocked:
			record.DispatchedCount++
			record.BlockedCount++
		case outcomeCooldown:
			record.CooldownSkipped++
		case outcomeConflict:
			record.ConflictCount++
		case outcomeFailed:
			record.FailedCount++
		}
	}

	p.finish(ctx, &record)
	tracing.RecordPollCycleResult(span, string(source), record.FetchedCount, record.DispatchedCount, record.FailedCount, nil)

	slog.InfoContext(ctx, "poll cycle finished",
		slog.String("cycle_id", record.CycleID),
		slog.String("source", string(record.Source)),
		slog.Int("fetched", record.FetchedCount),
		slog.Int("due", len(due)),
		slog.Int("dispatched", record.DispatchedCount),
		slog.Int("cooldown_skipped", record.CooldownSkipped),
		slog.Int("conflicts", record.ConflictCount),
		slog.Int("failed", record.FailedCount),
		slog.Duration("duration", record.Duration),
	)

	return record, nil
}

// fetch reads the due set from the remote store, falling back to the local
// cache on any failure other than an expired credential.
func (p *Poller) fetch(ctx context.Context) ([]*domain.ReminderDefinition, domain.CycleSource, error) {
	refreshed := false
	for {
		cred, _ := p.credential()

		defs, err := p.remote.FetchDue(ctx, cred, p.cfg.WindowPast, p.cfg.WindowFuture)
		if err == nil {
			p.mirror(ctx, defs)
			return defs, domain.CycleSourceRemote, nil
		}

		if errors.Is(err, domain.ErrCredentialExpired) {
			if refreshed || !p.awaitRefresh(ctx, cred.UserID) {
				return nil, domain.CycleSourceNone, err
			}
			refreshed = true
			continue
		}

		if p.local == nil {
			return nil, domain.CycleSourceNone, err
		}

		slog.WarnContext(ctx, "remote fetch failed, using local cache",
			slog.String("user_id", cred.UserID),
			slog.String("error", err.Error()),
		)

		defs, localErr := p.local.FetchDue(ctx, cred, p.cfg.WindowPast, p.cfg.WindowFuture)
		if localErr != nil {
			return nil, domain.CycleSourceNone, fmt.Errorf("local fallback failed: %w", errors.Join(err, localErr))
		}
		return defs, domain.CycleSourceLocal, nil
	}
}

func (p *Poller) mirror(ctx context.Context, defs []*domain.ReminderDefinition) {
	if p.local == nil || len(defs) == 0 {
		return
	}
	if err := p.local.Mirror(ctx, defs); err != nil {
		slog.WarnContext(ctx, "failed to mirror reminders into local cache",
			slog.Int("count", len(defs)),
			slog.String("error", err.Error()),
		)
	}
}

// syncSettings replaces the cached set after a settings save. A failure
// leaves the sync pending for the next cycle.
func (p *Poller) syncSettings(ctx context.Context, cred domain.Credential) {
	defs, err := p.remote.ListReminders(ctx, cred)
	if err != nil {
		p.pendingSync.Store(true)
		slog.WarnContext(ctx, "settings sync failed",
			slog.String("user_id", cred.UserID),
			slog.String("error", err.Error()),
		)
		return
	}

	if p.local == nil {
		return
	}
	if err := p.local.Replace(ctx, cred.UserID, defs); err != nil {
		p.pendingSync.Store(true)
		slog.WarnContext(ctx, "failed to replace local cache after settings change",
			slog.String("user_id", cred.UserID),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.InfoContext(ctx, "settings synced", slog.Int("count", len(defs)))
}

// dueNow keeps enabled definitions whose trigger time has arrived, most
// overdue first. Items later in the future window are left for later cycles.
func dueNow(defs []*domain.ReminderDefinition, now time.Time) []*domain.ReminderDefinition {
	due := make([]*domain.ReminderDefinition, 0, len(defs))
	for _, def := range defs {
		if def == nil || !def.Enabled || def.NextTriggerTime.IsZero() {
			continue
		}
		if def.NextTriggerTime.After(now) {
			continue
		}
		due = append(due, def)
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextTriggerTime.Before(due[j].NextTriggerTime)
	})
	return due
}

func (p *Poller) finish(ctx context.Context, record *domain.CycleRecord) {
	record.Duration = p.clock().Sub(record.StartedAt)

	if p.metrics != nil {
		p.metrics.RecordCycle(ctx, string(record.Source), record.Duration)
	}
	if p.recorder != nil {
		if err := p.recorder.RecordCycle(ctx, *record); err != nil {
			slog.WarnContext(ctx, "failed to record cycle", slog.String("error", err.Error()))
		}
	}
}
