//go:build gcloud

package recorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt      time.Time `bigquery:"recorded_at"`
	CycleID         string    `bigquery:"cycle_id"`
	UserID          string    `bigquery:"user_id"`
	StartedAt       time.Time `bigquery:"started_at"`
	DurationMS      int64     `bigquery:"duration_ms"`
	Source          string    `bigquery:"source"`
	FetchedCount    int64     `bigquery:"fetched_count"`
	DispatchedCount int64     `bigquery:"dispatched_count"`
	CooldownSkipped int64     `bigquery:"cooldown_skipped"`
	ConflictCount   int64     `bigquery:"conflict_count"`
	FailedCount     int64     `bigquery:"failed_count"`
	BlockedCount    int64     `bigquery:"blocked_count"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.CycleRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "cycle recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, cycle recording disabled")
		return NewNoopRecorder(), nil
	}

	var opts []option.ClientOption
	if cfg.BigQueryCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.BigQueryCredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, cycle recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "cycle recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordCycle(ctx context.Context, record domain.CycleRecord) error {
	row := &bigQueryRecord{
		RecordedAt:      time.Now(),
		CycleID:         record.CycleID,
		UserID:          record.UserID,
		StartedAt:       record.StartedAt,
		DurationMS:      record.Duration.Milliseconds(),
		Source:          string(record.Source),
		FetchedCount:    int64(record.FetchedCount),
		DispatchedCount: int64(record.DispatchedCount),
		CooldownSkipped: int64(record.CooldownSkipped),
		ConflictCount:   int64(record.ConflictCount),
		FailedCount:     int64(record.FailedCount),
		BlockedCount:    int64(record.BlockedCount),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert cycle record to BigQuery",
			slog.String("error", err.Error()),
			slog.String("cycle_id", record.CycleID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
