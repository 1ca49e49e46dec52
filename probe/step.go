package probe

import (
	"context"

	"github.com/hairizuanbinnoorazman/flashprobe/session"
)

// Status represents the status of a probe run or an individual step.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusPassed, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// IsFinal checks if the status is a final status.
func (s Status) IsFinal() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusSkipped
}

// Step is one named unit of probing work. Steps are assembled once, then
// consumed exactly once per run, in declaration order.
type Step struct {
	// Name is the display name of the step.
	Name string

	// Skip is evaluated against the session immediately before the step
	// runs. A nil predicate never skips.
	Skip func(sess *session.Session) bool

	// Run performs the step's HTTP interaction, returning the outcome and a
	// short human-readable detail for the report.
	Run func(ctx context.Context, sess *session.Session) (ok bool, detail string)
}

// StepResult is the recorded outcome of one executed (or skipped) step.
type StepResult struct {
	Position int
	Name     string
	Status   Status
	Detail   string
}

// Summary counts step outcomes across one run. Every step transitions the
// summary by exactly one unit.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the number of steps accounted for.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Status reduces the summary to a final run status: failed when any step
// failed, passed otherwise.
func (s Summary) Status() Status {
	if s.Failed > 0 {
		return StatusFailed
	}
	return StatusPassed
}
