package jobs

import (
	"fmt"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
)

// Config tunes the reconciliation job. Zero values fall back to defaults.
type Config struct {
	Schedule    string
	BatchSize   int
	MaxAttempts int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *ReconciliationJob
}

// NewJobManager builds every job. It fails only on an invalid Config.
func NewJobManager(
	reconcileHandler reconcileRefundsHandler,
	recorder batchRecorder,
	cfg Config,
	logger *slog.Logger,
) (*JobManager, error) {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	cmd, err := commands.NewReconcileRefundsCommand(batchSize, cfg.MaxAttempts)
	if err != nil {
		return nil, err
	}

	return &JobManager{
		reconciliationJob: NewReconciliationJob(reconcileHandler, recorder, cmd, cfg.Schedule, logger),
	}, nil
}

// StartAll starts every job.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops every job and waits for running batches.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
}
