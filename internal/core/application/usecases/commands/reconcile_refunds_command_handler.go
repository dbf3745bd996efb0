package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/reconciliation"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// ReconcileRefundsResult summarises one batch.
type ReconcileRefundsResult struct {
	// Applied counts tasks whose reversal was committed.
	Applied int
	// Skipped counts tasks finished or locked by another worker in the meantime.
	Skipped int
	// Exhausted counts failed tasks that reached the attempt limit with this failure.
	Exhausted int
	// Failures holds one *errs.PartialReconciliationError per failed task.
	Failures []error
}

// Failed reports whether any task of the batch failed.
func (r ReconcileRefundsResult) Failed() bool {
	return len(r.Failures) > 0
}

// ReconcileRefundsCommandHandler applies accepted refunds to stock and shop balances.
//
// Every task runs in its own transaction that locks the task row, reverses what the
// order still has committed and marks the task done. Redelivering a task therefore
// never applies it twice: a done task is skipped and a half-done one cannot exist.
// A failed task is rolled back and its attempt counter is bumped in a separate
// transaction so it is retried by a later batch.
type ReconcileRefundsCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.Reconciler
}

// NewReconcileRefundsCommandHandler creates the handler.
func NewReconcileRefundsCommandHandler(uowFactory UoWFactory) ReconcileRefundsCommandHandler {
	return ReconcileRefundsCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewReconciler(),
	}
}

// Handle returns an error only when the batch could not be listed. Task failures are
// reported in the result.
func (h ReconcileRefundsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileRefundsCommand,
) (ReconcileRefundsResult, error) {
	var result ReconcileRefundsResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	tasks, err := h.pending(ctx, cmd)
	if err != nil {
		return result, err
	}

	for _, task := range tasks {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		applied, err := h.apply(ctx, task.ID())
		switch {
		case err == nil && applied:
			result.Applied++
		case err == nil:
			result.Skipped++
		default:
			exhausted, recordErr := h.recordFailure(ctx, task.ID(), err, cmd.MaxAttempts())
			if exhausted {
				result.Exhausted++
			}
			result.Failures = append(result.Failures,
				errs.NewPartialReconciliationError(task.OrderID(), task.ID(), errors.Join(err, recordErr)))
		}
	}

	return result, nil
}

func (h ReconcileRefundsCommandHandler) pending(
	ctx context.Context,
	cmd ReconcileRefundsCommand,
) ([]*reconciliation.Task, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.TaskRepository().ListPending(ctx, cmd.BatchSize(), cmd.MaxAttempts())
}

// apply reports false without error when the task is no longer available.
func (h ReconcileRefundsCommandHandler) apply(ctx context.Context, taskID kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	task, err := uow.TaskRepository().Lock(ctx, taskID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if task.Kind() != reconciliation.KindRefund {
		return false, errs.NewValueIsInvalidErrorWithCause("task kind", fmt.Errorf("unsupported kind %q", task.Kind()))
	}

	o, err := uow.OrderRepository().Get(ctx, task.OrderID())
	if err != nil {
		return false, err
	}

	if err = h.settle(ctx, uow, o); err != nil {
		return false, err
	}

	if err = task.MarkDone(time.Now().UTC()); err != nil {
		return false, err
	}
	if err = uow.TaskRepository().Update(ctx, task); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (h ReconcileRefundsCommandHandler) settle(ctx context.Context, uow UoW, o *order.Order) error {
	if !o.NeedsRefundReconciliation() {
		return h.reconciler.SettleRefund(o, nil, nil)
	}

	restock := o.StockCommitted()
	debit := !o.SettledAmount().IsZero()

	var products []*catalog.Product
	if restock {
		var err error
		if products, err = uow.ProductRepository().GetMany(ctx, productIDs(o)); err != nil {
			return err
		}
	}

	var shop *catalog.Shop
	if debit {
		var err error
		if shop, err = uow.ShopRepository().Get(ctx, o.ShopID()); err != nil {
			return err
		}
	}

	if err := h.reconciler.SettleRefund(o, products, shop); err != nil {
		return err
	}

	for _, p := range products {
		if err := uow.ProductRepository().Update(ctx, p); err != nil {
			return err
		}
	}
	if shop != nil {
		if err := uow.ShopRepository().Update(ctx, shop); err != nil {
			return err
		}
	}
	return uow.OrderRepository().Update(ctx, o)
}

func (h ReconcileRefundsCommandHandler) recordFailure(
	ctx context.Context,
	taskID kernel.UUID,
	cause error,
	maxAttempts int,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	task, err := uow.TaskRepository().Lock(ctx, taskID)
	if err != nil {
		return false, err
	}

	if err = task.RecordFailure(cause); err != nil {
		return false, err
	}
	if err = uow.TaskRepository().Update(ctx, task); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return task.IsExhausted(maxAttempts), nil
}
