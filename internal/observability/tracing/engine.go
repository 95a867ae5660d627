package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const engineTracerName = "github.com/KasumiMercury/primind-reminder-engine/internal/service/poller"

func EngineTracer() trace.Tracer {
	return otel.Tracer(engineTracerName)
}

func StartPollCycleSpan(ctx context.Context, cycleID, userID string, now time.Time) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "reminder.poll_cycle",
		trace.WithAttributes(
			attribute.String("cycle.id", cycleID),
			attribute.String("user.id", userID),
			attribute.String("cycle.now", now.Format(time.RFC3339)),
		),
	)
}

func StartDispatchSpan(ctx context.Context, reminderID, kind string) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "reminder.dispatch",
		trace.WithAttributes(
			attribute.String("reminder.id", reminderID),
			attribute.String("reminder.kind", kind),
		),
	)
}

func StartStoreSpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "reminder.store."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "reminder.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPollCycleResult(span trace.Span, source string, fetched, dispatched, failed int, err error) {
	span.SetAttributes(
		attribute.String("cycle.source", source),
		attribute.Int("cycle.fetched_count", fetched),
		attribute.Int("cycle.dispatched_count", dispatched),
		attribute.Int("cycle.failed_count", failed),
	)
	RecordResult(span, err)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
