package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	engineMeterName = "reminder.engine"
)

type EngineMetrics struct {
	cyclesTotal        metric.Int64Counter
	cycleDuration      metric.Float64Histogram
	dispatchesTotal    metric.Int64Counter
	storeRequestsTotal metric.Int64Counter
	credentialRefresh  metric.Int64Counter
}

func NewEngineMetrics() (*EngineMetrics, error) {
	meter := otel.Meter(engineMeterName)

	cyclesTotal, err := meter.Int64Counter(
		"reminder_poll_cycles_total",
		metric.WithDescription("Total number of poll cycles by fetch source"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"reminder_poll_cycle_duration_seconds",
		metric.WithDescription("Poll cycle duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	dispatchesTotal, err := meter.Int64Counter(
		"reminder_dispatches_total",
		metric.WithDescription("Dispatch attempts by outcome"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	storeRequestsTotal, err := meter.Int64Counter(
		"reminder_store_requests_total",
		metric.WithDescription("Remote store requests by operation and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	credentialRefresh, err := meter.Int64Counter(
		"reminder_credential_refresh_total",
		metric.WithDescription("Credential refreshes by trigger and outcome"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, err
	}

	return &EngineMetrics{
		cyclesTotal:        cyclesTotal,
		cycleDuration:      cycleDuration,
		dispatchesTotal:    dispatchesTotal,
		storeRequestsTotal: storeRequestsTotal,
		credentialRefresh:  credentialRefresh,
	}, nil
}

func (m *EngineMetrics) RecordCycle(ctx context.Context, source string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("source", source))
	m.cyclesTotal.Add(ctx, 1, attrs)
	m.cycleDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDispatch counts one dispatch attempt; outcome is shown, blocked, conflict, cooldown or failed.
func (m *EngineMetrics) RecordDispatch(ctx context.Context, kind, outcome string) {
	m.dispatchesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *EngineMetrics) RecordStoreRequest(ctx context.Context, operation, outcome string) {
	m.storeRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func (m *EngineMetrics) RecordCredentialRefresh(ctx context.Context, trigger, outcome string) {
	m.credentialRefresh.Add(ctx, 1, metric.WithAttributes(
		attribute.String("trigger", trigger),
		attribute.String("outcome", outcome),
	))
}
