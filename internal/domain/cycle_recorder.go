package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=cycle_recorder.go -destination=cycle_recorder_mock.go -package=domain

// CycleSource tells which store served a poll cycle.
type CycleSource string

const (
	CycleSourceRemote CycleSource = "remote"
	CycleSourceLocal  CycleSource = "local"
	CycleSourceNone   CycleSource = "none"
)

type CycleRecord struct {
	CycleID         string
	UserID          string
	StartedAt       time.Time
	Duration        time.Duration
	Source          CycleSource
	FetchedCount    int
	DispatchedCount int
	CooldownSkipped int
	ConflictCount   int
	FailedCount     int
	BlockedCount    int
}

type CycleRecorder interface {
	RecordCycle(ctx context.Context, record CycleRecord) error
	Close() error
}
