package history

import (
	"context"

	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
)

// Recorder writes runs to a Store on a best-effort basis: recording failures
// are logged and never fail the probe run itself. A nil Recorder is a no-op.
type Recorder struct {
	store  Store
	logger logger.Logger
}

// NewRecorder creates a recorder backed by the given store.
func NewRecorder(store Store, log logger.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: log,
	}
}

// RunStarted creates and starts a run record, returning nil when recording
// is disabled or the write failed.
func (r *Recorder) RunStarted(ctx context.Context, target, suite string) *Run {
	if r == nil {
		return nil
	}

	run := &Run{Target: target, Suite: suite}
	if err := r.store.CreateRun(ctx, run); err != nil {
		r.logger.Warn(ctx, "failed to record run start", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if err := r.store.StartRun(ctx, run.ID); err != nil {
		r.logger.Warn(ctx, "failed to mark run as running", map[string]interface{}{
			"error":  err.Error(),
			"run_id": run.ID,
		})
		return nil
	}
	return run
}

// RunFinished completes the run record and attaches the step results. A nil
// run (recording disabled or start failed) is ignored.
func (r *Recorder) RunFinished(ctx context.Context, run *Run, sum probe.Summary, results []probe.StepResult) {
	if r == nil || run == nil {
		return
	}

	if err := r.store.AddStepResults(ctx, run.ID, results); err != nil {
		r.logger.Warn(ctx, "failed to record step results", map[string]interface{}{
			"error":  err.Error(),
			"run_id": run.ID,
		})
	}
	if err := r.store.CompleteRun(ctx, run.ID, sum); err != nil {
		r.logger.Warn(ctx, "failed to record run completion", map[string]interface{}{
			"error":  err.Error(),
			"run_id": run.ID,
		})
	}
}
