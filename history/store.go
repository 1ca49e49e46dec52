package history

import (
	"context"

	"github.com/google/uuid"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
)

// Store persists runs and their step results.
type Store interface {
	// CreateRun creates a new run record.
	CreateRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by its ID.
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)

	// StartRun marks a run as started.
	StartRun(ctx context.Context, id uuid.UUID) error

	// CompleteRun folds the final summary into a running run.
	CompleteRun(ctx context.Context, id uuid.UUID, sum probe.Summary) error

	// AddStepResults records the per-step outcomes of a run.
	AddStepResults(ctx context.Context, runID uuid.UUID, results []probe.StepResult) error

	// ListRuns retrieves recent runs, newest first.
	ListRuns(ctx context.Context, limit, offset int) ([]*Run, error)

	// ListStepResults retrieves the step results of a run in step order.
	ListStepResults(ctx context.Context, runID uuid.UUID) ([]*StepResult, error)
}
