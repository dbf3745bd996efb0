package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/reconciliation"
)

// RequestRefundCommandHandler records the buyer's refund request. Stock and balances
// are untouched.
type RequestRefundCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRequestRefundCommandHandler creates the handler.
func NewRequestRefundCommandHandler(uowFactory OrderUoWFactory) RequestRefundCommandHandler {
	return RequestRefundCommandHandler{uowFactory: uowFactory}
}

// Handle moves the order to "Refund requested" and returns it.
func (h RequestRefundCommandHandler) Handle(ctx context.Context, cmd RequestRefundCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.RequestRefund(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// AcceptRefundCommandHandler moves the order to "Refund Success" and, when stock or a
// payout has to be reversed, enqueues a reconciliation task in the same transaction.
// The reversal itself runs later in ReconcileRefundsCommandHandler.
type AcceptRefundCommandHandler struct {
	uowFactory RefundUoWFactory
}

// NewAcceptRefundCommandHandler creates the handler.
func NewAcceptRefundCommandHandler(uowFactory RefundUoWFactory) AcceptRefundCommandHandler {
	return AcceptRefundCommandHandler{uowFactory: uowFactory}
}

// Handle moves the order to "Refund Success" and queues its reconciliation task in
// the same transaction.
func (h AcceptRefundCommandHandler) Handle(ctx context.Context, cmd AcceptRefundCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.AcceptRefund(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if o.NeedsRefundReconciliation() {
		task, err := reconciliation.NewTask(kernel.NewUUID(), o.ID(), reconciliation.KindRefund, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		if err = uow.TaskRepository().Add(ctx, task); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
