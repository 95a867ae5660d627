package recorder

import (
	"context"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.CycleRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordCycle(_ context.Context, _ domain.CycleRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
