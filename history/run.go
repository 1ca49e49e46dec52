// Package history persists probe runs and their per-step results so past
// smoke tests against an environment can be reviewed later.
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"gorm.io/gorm"
)

var (
	// ErrRunNotFound is returned when a run is not found.
	ErrRunNotFound = errors.New("run not found")

	// ErrInvalidTarget is returned when the target URL is not set.
	ErrInvalidTarget = errors.New("target is required")

	// ErrInvalidSuite is returned when the suite name is not set.
	ErrInvalidSuite = errors.New("suite is required")

	// ErrInvalidStatus is returned when the status is invalid.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrRunNotRunning is returned when trying to complete a run that's not running.
	ErrRunNotRunning = errors.New("run is not running")

	// ErrRunAlreadyStarted is returned when trying to start an already started run.
	ErrRunAlreadyStarted = errors.New("run already started")
)

// Run represents one recorded probe run.
type Run struct {
	ID          uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	Target      string       `json:"target" gorm:"not null"`
	Suite       string       `json:"suite" gorm:"not null;index:idx_runs_suite"`
	Status      probe.Status `json:"status" gorm:"type:varchar(20);not null;default:'pending';index:idx_runs_status"`
	Passed      int          `json:"passed"`
	Failed      int          `json:"failed"`
	Skipped     int          `json:"skipped"`
	StartedAt   *time.Time   `json:"started_at,omitempty" gorm:"index:idx_runs_started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating a new run
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Validate checks if the run has valid required fields.
func (r *Run) Validate() error {
	if r.Target == "" {
		return ErrInvalidTarget
	}
	if r.Suite == "" {
		return ErrInvalidSuite
	}
	if !r.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Start sets the started_at timestamp and changes status to running.
// Returns an error if the run has already been started.
func (r *Run) Start() error {
	if r.StartedAt != nil {
		return ErrRunAlreadyStarted
	}
	now := time.Now()
	r.StartedAt = &now
	r.Status = probe.StatusRunning
	return nil
}

// Complete folds the summary into the run: counts, completed_at, and a
// final status of failed when any step failed, passed otherwise. Returns an
// error if the run is not currently running.
func (r *Run) Complete(sum probe.Summary) error {
	if r.Status != probe.StatusRunning {
		return ErrRunNotRunning
	}
	now := time.Now()
	r.CompletedAt = &now
	r.Status = sum.Status()
	r.Passed = sum.Passed
	r.Failed = sum.Failed
	r.Skipped = sum.Skipped
	return nil
}
