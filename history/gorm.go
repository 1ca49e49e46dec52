package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the history database. Driver is "sqlite" (dsn is a file
// path) or "mysql" (dsn is a MySQL DSN) and the schema is migrated on open.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported history driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Run{}, &StepResult{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	return db, nil
}

// GormStore implements the Store interface using GORM.
type GormStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStore creates a new GORM-backed history store.
func NewGormStore(db *gorm.DB, log logger.Logger) *GormStore {
	return &GormStore{
		db:     db,
		logger: log,
	}
}

// CreateRun creates a new run record.
func (s *GormStore) CreateRun(ctx context.Context, run *Run) error {
	if run.Status == "" {
		run.Status = probe.StatusPending
	}

	if err := run.Validate(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		s.logger.Error(ctx, "failed to create run", map[string]interface{}{
			"error":  err.Error(),
			"target": run.Target,
			"suite":  run.Suite,
		})
		return err
	}

	s.logger.Info(ctx, "run created", map[string]interface{}{
		"run_id": run.ID,
		"suite":  run.Suite,
	})

	return nil
}

// GetRun retrieves a run by its ID.
func (s *GormStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&run).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		s.logger.Error(ctx, "failed to get run by ID", map[string]interface{}{
			"error":  err.Error(),
			"run_id": id,
		})
		return nil, err
	}

	return &run, nil
}

// StartRun marks a run as started.
func (s *GormStore) StartRun(ctx context.Context, id uuid.UUID) error {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return err
	}

	if err := run.Start(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Save(run).Error; err != nil {
		s.logger.Error(ctx, "failed to start run", map[string]interface{}{
			"error":  err.Error(),
			"run_id": id,
		})
		return err
	}

	return nil
}

// CompleteRun folds the final summary into a running run.
func (s *GormStore) CompleteRun(ctx context.Context, id uuid.UUID, sum probe.Summary) error {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return err
	}

	if err := run.Complete(sum); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Save(run).Error; err != nil {
		s.logger.Error(ctx, "failed to complete run", map[string]interface{}{
			"error":  err.Error(),
			"run_id": id,
		})
		return err
	}

	s.logger.Info(ctx, "run completed", map[string]interface{}{
		"run_id": id,
		"status": string(run.Status),
	})

	return nil
}

// AddStepResults records the per-step outcomes of a run.
func (s *GormStore) AddStepResults(ctx context.Context, runID uuid.UUID, results []probe.StepResult) error {
	if len(results) == 0 {
		return nil
	}

	records := make([]*StepResult, 0, len(results))
	for _, res := range results {
		record := &StepResult{
			RunID:    runID,
			Position: res.Position,
			Name:     res.Name,
			Status:   res.Status,
			Detail:   res.Detail,
		}
		if err := record.Validate(); err != nil {
			return err
		}
		records = append(records, record)
	}

	if err := s.db.WithContext(ctx).Create(records).Error; err != nil {
		s.logger.Error(ctx, "failed to add step results", map[string]interface{}{
			"error":  err.Error(),
			"run_id": runID,
		})
		return err
	}

	return nil
}

// ListRuns retrieves recent runs, newest first.
func (s *GormStore) ListRuns(ctx context.Context, limit, offset int) ([]*Run, error) {
	var runs []*Run
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list runs", map[string]interface{}{
			"error":  err.Error(),
			"limit":  limit,
			"offset": offset,
		})
		return nil, err
	}

	return runs, nil
}

// ListStepResults retrieves the step results of a run in step order.
func (s *GormStore) ListStepResults(ctx context.Context, runID uuid.UUID) ([]*StepResult, error) {
	var results []*StepResult
	err := s.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("position ASC").
		Find(&results).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list step results", map[string]interface{}{
			"error":  err.Error(),
			"run_id": runID,
		})
		return nil, err
	}

	return results, nil
}
