package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// EverySecond is the default schedule of the reconciliation job.
const EverySecond = "* * * * * *"

type reconcileRefundsHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileRefundsCommand) (commands.ReconcileRefundsResult, error)
}

type batchRecorder interface {
	RecordReconciliation(applied, skipped, failed, exhausted int)
}

// ReconciliationJob periodically applies accepted refunds to stock and shop balances.
type ReconciliationJob struct {
	handler  reconcileRefundsHandler
	recorder batchRecorder
	cmd      commands.ReconcileRefundsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates a stopped job; an empty schedule means EverySecond.
func NewReconciliationJob(
	handler reconcileRefundsHandler,
	recorder batchRecorder,
	cmd commands.ReconcileRefundsCommand,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	if schedule == "" {
		schedule = EverySecond
	}
	return &ReconciliationJob{
		handler:  handler,
		recorder: recorder,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start registers the job and starts its scheduler. It fails on an invalid schedule.
func (j *ReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running batch to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

// RunOnce drains one batch and reports it.
func (j *ReconciliationJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation batch failed", "error", err)
	}

	for _, failure := range result.Failures {
		var partial *errs.PartialReconciliationError
		if errors.As(failure, &partial) {
			j.logger.ErrorContext(ctx, "Refund reconciliation failed",
				"order_id", fmt.Sprint(partial.OrderID),
				"task_id", fmt.Sprint(partial.TaskID),
				"error", partial.Cause,
			)
			continue
		}
		j.logger.ErrorContext(ctx, "Refund reconciliation failed", "error", failure)
	}

	if result.Applied > 0 {
		j.logger.InfoContext(ctx, "Refunds reconciled", "applied", result.Applied)
	}
	j.recorder.RecordReconciliation(result.Applied, result.Skipped, len(result.Failures), result.Exhausted)
}
