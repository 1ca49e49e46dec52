package history

import (
	"testing"

	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/testutil"
	"gorm.io/gorm"
)

// setupTestStore creates a test database and history store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, *GormStore) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Run{}, &StepResult{})

	log := logger.NewTestLogger()
	store := NewGormStore(db, log)

	return db, store
}

// testLogger returns a capture logger for store tests.
func testLogger() logger.Logger {
	return logger.NewTestLogger()
}

// createRun creates a run with default values.
func createRun(target, suite string) *Run {
	return &Run{
		Target: target,
		Suite:  suite,
	}
}
