package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReconcileHandler struct {
	mock.Mock
	calls atomic.Int32
}

func (m *mockReconcileHandler) Handle(
	ctx context.Context,
	cmd commands.ReconcileRefundsCommand,
) (commands.ReconcileRefundsResult, error) {
	m.calls.Add(1)
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ReconcileRefundsResult), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordReconciliation(applied, skipped, failed, exhausted int) {
	m.Called(applied, skipped, failed, exhausted)
}

func testCommand(t *testing.T) commands.ReconcileRefundsCommand {
	t.Helper()
	cmd, err := commands.NewReconcileRefundsCommand(10, 3)
	require.NoError(t, err)
	return cmd
}

func TestRunOnce_LogsFailuresAndRecordsBatch(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	orderID, taskID := kernel.NewUUID(), kernel.NewUUID()
	handler := new(mockReconcileHandler)
	handler.On("Handle", ctx, mock.Anything).Return(commands.ReconcileRefundsResult{
		Applied:   2,
		Skipped:   1,
		Exhausted: 1,
		Failures: []error{
			errs.NewPartialReconciliationError(orderID, taskID, errors.New("stock conflict")),
		},
	}, nil).Once()
	recorder := new(mockRecorder)
	recorder.On("RecordReconciliation", 2, 1, 1, 1).Once()

	NewReconciliationJob(handler, recorder, testCommand(t), "", logger).RunOnce(ctx)

	recorder.AssertExpectations(t)
	assert.Contains(t, logs.String(), orderID.String())
	assert.Contains(t, logs.String(), "stock conflict")
	assert.Contains(t, logs.String(), `"component":"reconciliation_job"`)
}

func TestRunOnce_ListingErrorStillRecordsEmptyBatch(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer

	handler := new(mockReconcileHandler)
	handler.On("Handle", ctx, mock.Anything).
		Return(commands.ReconcileRefundsResult{}, errors.New("database is down")).Once()
	recorder := new(mockRecorder)
	recorder.On("RecordReconciliation", 0, 0, 0, 0).Once()

	NewReconciliationJob(handler, recorder, testCommand(t), "", slog.New(slog.NewTextHandler(&logs, nil))).RunOnce(ctx)

	recorder.AssertExpectations(t)
	assert.Contains(t, logs.String(), "database is down")
}

func TestReconciliationJob_StartRunsOnSchedule(t *testing.T) {
	handler := new(mockReconcileHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.ReconcileRefundsResult{}, nil)
	recorder := new(mockRecorder)
	recorder.On("RecordReconciliation", 0, 0, 0, 0)

	job := NewReconciliationJob(handler, recorder, testCommand(t), EverySecond, slog.New(slog.DiscardHandler))
	require.NoError(t, job.Start())

	assert.Eventually(t, func() bool { return handler.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	job.Stop()
}

func TestJobManager_InvalidScheduleFailsToStart(t *testing.T) {
	manager, err := NewJobManager(new(mockReconcileHandler), new(mockRecorder), Config{Schedule: "not a schedule"}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	require.Error(t, manager.StartAll())
}

func TestJobManager_DefaultsBatchSize(t *testing.T) {
	manager, err := NewJobManager(new(mockReconcileHandler), new(mockRecorder), Config{}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.Equal(t, 50, manager.reconciliationJob.cmd.BatchSize())
	assert.Equal(t, EverySecond, manager.reconciliationJob.schedule)
}
