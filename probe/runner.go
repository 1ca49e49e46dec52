package probe

import (
	"context"
	"time"

	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
)

// Reporter receives step outcomes as the runner produces them.
type Reporter interface {
	// StepStarted is called before a step's skip predicate is evaluated.
	StepStarted(name string)

	// StepFinished is called once per step with its recorded outcome.
	StepFinished(res StepResult)

	// RunFinished is called after the last step with the final counts.
	RunFinished(sum Summary)
}

type nopReporter struct{}

func (nopReporter) StepStarted(string)      {}
func (nopReporter) StepFinished(StepResult) {}
func (nopReporter) RunFinished(Summary)     {}

// Runner executes an ordered list of steps against a shared session: strictly
// sequential, one request in flight at a time, with a fixed delay between
// consecutive step executions so the target server is throttled rather than
// batched.
type Runner struct {
	steps    []Step
	delay    time.Duration
	logger   logger.Logger
	reporter Reporter
}

// NewRunner creates a runner. A nil reporter is replaced with a no-op one.
func NewRunner(steps []Step, delay time.Duration, log logger.Logger, rep Reporter) *Runner {
	if rep == nil {
		rep = nopReporter{}
	}
	return &Runner{
		steps:    steps,
		delay:    delay,
		logger:   log,
		reporter: rep,
	}
}

// Run executes every step in declaration order and returns the summary along
// with the per-step results. Skipped steps consume no delay. A cancelled
// context fails the remaining steps without sending further requests.
func (r *Runner) Run(ctx context.Context, sess *session.Session) (Summary, []StepResult) {
	var sum Summary
	results := make([]StepResult, 0, len(r.steps))
	throttle := false

	for i, step := range r.steps {
		if throttle && r.delay > 0 {
			if err := sleep(ctx, r.delay); err != nil {
				r.logger.Warn(ctx, "run cancelled between steps", map[string]interface{}{
					"step": step.Name,
				})
			}
		}

		r.reporter.StepStarted(step.Name)
		res := StepResult{Position: i, Name: step.Name}

		if step.Skip != nil && step.Skip(sess) {
			res.Status = StatusSkipped
			sum.Skipped++
			r.logger.Info(ctx, "step skipped", map[string]interface{}{
				"step": step.Name,
			})
			throttle = false
		} else {
			ok, detail := step.Run(ctx, sess)
			res.Detail = detail
			if ok {
				res.Status = StatusPassed
				sum.Passed++
			} else {
				res.Status = StatusFailed
				sum.Failed++
			}
			r.logger.Info(ctx, "step finished", map[string]interface{}{
				"step":   step.Name,
				"status": string(res.Status),
				"detail": detail,
			})
			throttle = true
		}

		r.reporter.StepFinished(res)
		results = append(results, res)
	}

	r.reporter.RunFinished(sum)
	return sum, results
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
