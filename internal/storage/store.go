package storage

import (
	"context"

	"monomachia/internal/model"
)

// Store persists run records and per-generation fitness series.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveSeries(ctx context.Context, runID string, series []model.GenerationRecord) error
	GetSeries(ctx context.Context, runID string) ([]model.GenerationRecord, bool, error)
}
