package commands

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a fulfilment transition and its stock or
// balance effect in one transaction.
//
//   - "Transferred to delivery partner": every line is deducted from its product
//   - "Delivered": the order's shop is credited with 90% of the order total
//
// Refund statuses have their own commands and are rejected here. A missing order is
// reported before anything is written.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.Reconciler
}

// NewUpdateOrderStatusCommandHandler creates the handler.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewReconciler(),
	}
}

// Handle applies the transition and its stock or balance effects in one transaction
// and returns the updated order.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	switch cmd.Status() {
	case order.TransferredToDeliveryPartner:
		err = h.handOver(ctx, uow, o)
	case order.Delivered:
		err = h.deliver(ctx, uow, o)
	default:
		err = errs.NewValueIsInvalidErrorWithCause(
			"status transition is invalid",
			fmt.Errorf("%s is not set through the status route", cmd.Status().String()),
		)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h UpdateOrderStatusCommandHandler) handOver(ctx context.Context, uow UoW, o *order.Order) error {
	productRepo := uow.ProductRepository()

	products, err := productRepo.GetMany(ctx, productIDs(o))
	if err != nil {
		return err
	}

	if err = h.reconciler.HandOver(o, products); err != nil {
		return err
	}

	for _, p := range products {
		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (h UpdateOrderStatusCommandHandler) deliver(ctx context.Context, uow UoW, o *order.Order) error {
	shopRepo := uow.ShopRepository()

	shop, err := shopRepo.Get(ctx, o.ShopID())
	if err != nil {
		return err
	}

	if _, err = h.reconciler.Deliver(o, shop, time.Now().UTC()); err != nil {
		return err
	}

	return shopRepo.Update(ctx, shop)
}

// productIDs lists each product of the order once, in line order.
func productIDs(o *order.Order) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{})
	ids := make([]kernel.UUID, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		if _, ok := seen[line.ProductID()]; ok {
			continue
		}
		seen[line.ProductID()] = struct{}{}
		ids = append(ids, line.ProductID())
	}
	return ids
}
