//go:build !gcloud

package recorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

const cycleMeasurement = "poll_cycle"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.CycleRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "cycle recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, cycle recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "cycle recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}, nil
}

func cyclePoint(record domain.CycleRecord) *write.Point {
	return influxdb2.NewPoint(
		cycleMeasurement,
		map[string]string{
			"user_id": record.UserID,
			"source":  string(record.Source),
		},
		map[string]any{
			"cycle_id":         record.CycleID,
			"duration_ms":      record.Duration.Milliseconds(),
			"fetched_count":    record.FetchedCount,
			"dispatched_count": record.DispatchedCount,
			"cooldown_skipped": record.CooldownSkipped,
			"conflict_count":   record.ConflictCount,
			"failed_count":     record.FailedCount,
			"blocked_count":    record.BlockedCount,
		},
		record.StartedAt,
	)
}

// RecordCycle never fails the caller; write errors are logged.
func (r *influxDBRecorder) RecordCycle(ctx context.Context, record domain.CycleRecord) error {
	if err := r.writeAPI.WritePoint(ctx, cyclePoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write cycle record to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("cycle_id", record.CycleID),
		)
	}
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
