package poller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/tracing"
)

// dispatch runs the per-item sequence: cooldown mark, next time, conditional
// write, then show. Nothing is shown unless the write succeeded.
func (p *Poller) dispatch(ctx context.Context, store domain.ReminderStore, source domain.CycleSource, def *domain.ReminderDefinition) outcome {
	ctx, span := tracing.StartDispatchSpan(ctx, def.ID, def.Kind.String())
	defer span.End()

	result := p.dispatchSafely(ctx, store, source, def)
	if p.metrics != nil {
		p.metrics.RecordDispatch(ctx, def.Kind.String(), result.String())
	}
	tracing.RecordResult(span, nil)
	return result
}

// dispatchSafely keeps a panic on one definition from ending the cycle for
// the rest of the batch.
func (p *Poller) dispatchSafely(ctx context.Context, store domain.ReminderStore, source domain.CycleSource, def *domain.ReminderDefinition) (result outcome) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "reminder dispatch panicked",
				slog.String("reminder_id", def.ID),
				slog.String("kind", def.Kind.String()),
				slog.Any("panic", r),
			)
			result = outcomeFailed
		}
	}()
	return p.dispatchOne(ctx, store, source, def)
}

func (p *Poller) dispatchOne(ctx context.Context, store domain.ReminderStore, source domain.CycleSource, def *domain.ReminderDefinition) outcome {
	now := p.clock()
	if !p.guard.TryMark(def.ID, now) {
		slog.DebugContext(ctx, "reminder in cooldown", slog.String("reminder_id", def.ID))
		return outcomeCooldown
	}

	write := domain.TriggerWrite{
		ReminderID:           def.ID,
		NextTriggerTime:      p.calc.NextAfterTrigger(def, now),
		PreviousTriggerCount: def.TriggerCount,
	}

	cred, _ := p.credential()
	updated, err := store.RecordTrigger(ctx, cred, write)
	if errors.Is(err, domain.ErrCredentialExpired) && source == domain.CycleSourceRemote {
		if p.awaitRefresh(ctx, cred.UserID) {
			cred, _ = p.credential()
			updated, err = store.RecordTrigger(ctx, cred, write)
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTriggerConflict):
		// Another cycle recorded this occurrence; keep the mark.
		slog.InfoContext(ctx, "trigger already recorded",
			slog.String("reminder_id", def.ID),
			slog.Int64("previous_trigger_count", def.TriggerCount),
		)
		return outcomeConflict
	default:
		p.guard.Unmark(def.ID)
		slog.WarnContext(ctx, "failed to record trigger, retrying next cycle",
			slog.String("reminder_id", def.ID),
			slog.String("source", string(source)),
			slog.String("error", err.Error()),
		)
		return outcomeFailed
	}

	if source == domain.CycleSourceRemote && updated != nil {
		p.mirror(ctx, []*domain.ReminderDefinition{updated})
	}

	dedupKey := domain.DedupKey(def)
	shown, err := p.notifier.Show(ctx, domain.Notification{
		UserID:     cred.UserID,
		ReminderID: def.ID,
		DedupKey:   dedupKey,
		Payload:    def.Payload,
	})
	if err != nil {
		slog.WarnContext(ctx, "notification show failed",
			slog.String("reminder_id", def.ID),
			slog.String("error", err.Error()),
		)
	}

	if shown != domain.ShowResultShown {
		reason := domain.ErrNotificationBlocked.Error()
		if err != nil {
			reason = err.Error()
		}
		p.emit(ctx, domain.NotificationBlocked{
			ReminderID: def.ID,
			DedupKey:   dedupKey,
			Reason:     reason,
		})
		return outcomeBlocked
	}

	slog.InfoContext(ctx, "reminder dispatched",
		slog.String("reminder_id", def.ID),
		slog.String("dedup_key", dedupKey),
		slog.Time("next_trigger_time", write.NextTriggerTime),
	)

	p.emit(ctx, domain.NotificationShown{
		ReminderID: def.ID,
		DedupKey:   dedupKey,
		Title:      def.Payload.Title,
		Body:       def.Payload.Body,
		NavTarget:  def.Payload.NavTarget,
	})
	return outcomeShown
}
