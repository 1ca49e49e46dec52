package probe

import (
	"context"
	"testing"

	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureReporter records reporter callbacks for assertions.
type captureReporter struct {
	started  []string
	finished []StepResult
	summary  *Summary
}

func (r *captureReporter) StepStarted(name string)     { r.started = append(r.started, name) }
func (r *captureReporter) StepFinished(res StepResult) { r.finished = append(r.finished, res) }
func (r *captureReporter) RunFinished(sum Summary)     { r.summary = &sum }

func passingStep(name string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			return true, "ok"
		},
	}
}

func failingStep(name string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			return false, "boom"
		},
	}
}

func TestRunner_Run_CountsEveryStepExactlyOnce(t *testing.T) {
	steps := []Step{
		passingStep("a"),
		failingStep("b"),
		{
			Name: "c",
			Skip: func(sess *session.Session) bool { return true },
			Run: func(ctx context.Context, sess *session.Session) (bool, string) {
				t.Fatal("skipped step must not run")
				return false, ""
			},
		},
		passingStep("d"),
	}

	rep := &captureReporter{}
	runner := NewRunner(steps, 0, logger.NewTestLogger(), rep)
	sum, results := runner.Run(context.Background(), session.New())

	assert.Equal(t, 2, sum.Passed)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, len(steps), sum.Total())

	require.Len(t, results, len(steps))
	require.NotNil(t, rep.summary)
	assert.Equal(t, sum, *rep.summary)
	assert.Equal(t, []string{"a", "b", "c", "d"}, rep.started)
}

func TestRunner_Run_DeclarationOrder(t *testing.T) {
	var order []string
	mkStep := func(name string) Step {
		return Step{
			Name: name,
			Run: func(ctx context.Context, sess *session.Session) (bool, string) {
				order = append(order, name)
				return true, ""
			},
		}
	}

	runner := NewRunner([]Step{mkStep("first"), mkStep("second"), mkStep("third")}, 0, logger.NewTestLogger(), nil)
	runner.Run(context.Background(), session.New())

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRunner_Run_SkipPredicateSeesEarlierMutations(t *testing.T) {
	steps := []Step{
		{
			Name: "login",
			Run: func(ctx context.Context, sess *session.Session) (bool, string) {
				sess.AccessToken = "tok"
				return true, ""
			},
		},
		{
			Name: "create deck",
			Skip: func(sess *session.Session) bool { return !sess.HasToken() },
			Run: func(ctx context.Context, sess *session.Session) (bool, string) {
				return true, ""
			},
		},
		{
			Name: "get deck",
			Skip: func(sess *session.Session) bool { return !sess.HasDeck() },
			Run: func(ctx context.Context, sess *session.Session) (bool, string) {
				return true, ""
			},
		},
	}

	runner := NewRunner(steps, 0, logger.NewTestLogger(), nil)
	sum, results := runner.Run(context.Background(), session.New())

	// token was captured so "create deck" ran; no deck id so "get deck" skipped
	assert.Equal(t, 2, sum.Passed)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, StatusPassed, results[1].Status)
	assert.Equal(t, StatusSkipped, results[2].Status)
}

func TestRunner_Run_StepResultPositions(t *testing.T) {
	runner := NewRunner([]Step{passingStep("a"), failingStep("b")}, 0, logger.NewTestLogger(), nil)
	_, results := runner.Run(context.Background(), session.New())

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Position)
	assert.Equal(t, 1, results[1].Position)
	assert.Equal(t, "boom", results[1].Detail)
}

func TestRunner_Run_EmptySuite(t *testing.T) {
	rep := &captureReporter{}
	runner := NewRunner(nil, 0, logger.NewTestLogger(), rep)
	sum, results := runner.Run(context.Background(), session.New())

	assert.Zero(t, sum.Total())
	assert.Empty(t, results)
	require.NotNil(t, rep.summary)
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"pending is valid", StatusPending, true},
		{"running is valid", StatusRunning, true},
		{"passed is valid", StatusPassed, true},
		{"failed is valid", StatusFailed, true},
		{"skipped is valid", StatusSkipped, true},
		{"invalid status", Status("invalid"), false},
		{"empty status", Status(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestStatus_IsFinal(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"passed is final", StatusPassed, true},
		{"failed is final", StatusFailed, true},
		{"skipped is final", StatusSkipped, true},
		{"pending is not final", StatusPending, false},
		{"running is not final", StatusRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsFinal())
		})
	}
}

func TestSummary_Status(t *testing.T) {
	assert.Equal(t, StatusPassed, Summary{Passed: 3, Skipped: 1}.Status())
	assert.Equal(t, StatusFailed, Summary{Passed: 3, Failed: 1}.Status())
	assert.Equal(t, StatusPassed, Summary{}.Status())
}
