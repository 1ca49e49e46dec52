package history

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"gorm.io/gorm"
)

var (
	// ErrInvalidRunID is returned when run_id is not set.
	ErrInvalidRunID = errors.New("run_id is required")

	// ErrInvalidStepName is returned when the step name is not set.
	ErrInvalidStepName = errors.New("step name is required")
)

// StepResult is the recorded outcome of one step within a run.
type StepResult struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	RunID     uuid.UUID    `json:"run_id" gorm:"type:char(36);not null;index:idx_step_results_run_id"`
	Position  int          `json:"position" gorm:"not null"`
	Name      string       `json:"name" gorm:"not null"`
	Status    probe.Status `json:"status" gorm:"type:varchar(20);not null"`
	Detail    string       `json:"detail" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at"`
}

// BeforeCreate hook to generate UUID before creating a new step result
func (sr *StepResult) BeforeCreate(tx *gorm.DB) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	return nil
}

// Validate checks if the step result has valid required fields.
func (sr *StepResult) Validate() error {
	if sr.RunID == uuid.Nil {
		return ErrInvalidRunID
	}
	if sr.Name == "" {
		return ErrInvalidStepName
	}
	if !sr.Status.IsFinal() {
		return ErrInvalidStatus
	}
	return nil
}
