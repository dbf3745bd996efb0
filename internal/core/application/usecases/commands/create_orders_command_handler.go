package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// CreateOrdersCommandHandler places the orders of a checkout and notifies the customer
// and every shop involved.
//
// The orders are committed before any notification is sent. When dispatching fails the
// committed orders are still returned, together with an errs.DependencyFailureError.
//
// Example:
//
//	handler := NewCreateOrdersCommandHandler(uowFactory, notifier, idempotencyStore, PricingSubtotal)
//	orders, err := handler.Handle(ctx, cmd)
//	var depErr *errs.DependencyFailureError
//	if errors.As(err, &depErr) && len(orders) > 0 {
//	    // orders exist, tell the client the notification failed
//	}
type CreateOrdersCommandHandler struct {
	uowFactory  CheckoutUoWFactory
	notifier    ports.NotificationDispatcher
	idempotency ports.IdempotencyStore
	pricing     PricingPolicy
	partitioner services.CartPartitioner
}

// NewCreateOrdersCommandHandler creates the checkout handler. idempotency may be nil,
// in which case idempotency keys are ignored.
func NewCreateOrdersCommandHandler(
	uowFactory CheckoutUoWFactory,
	notifier ports.NotificationDispatcher,
	idempotency ports.IdempotencyStore,
	pricing PricingPolicy,
) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory:  uowFactory,
		notifier:    notifier,
		idempotency: idempotency,
		pricing:     pricing,
		partitioner: services.NewCartPartitioner(),
	}
}

// Handle places the orders. An empty cart places nothing and notifies no one.
//
// With an idempotency key the key is reserved before any order is written: a key held
// by a running checkout yields errs.RequestInProgressError, a completed one replays its
// orders. Notifications go out even when the created ids could not be stored.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.IsEmpty() {
		return []*order.Order{}, nil
	}

	key := cmd.IdempotencyKey()
	if key == "" || h.idempotency == nil {
		orders, shops, err := h.placeOrders(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return orders, h.notify(ctx, cmd.Customer(), orders, shops)
	}

	state, ids, err := h.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, errs.NewDependencyFailureError("idempotency store", err)
	}
	switch state {
	case ports.IdempotencyCompleted:
		return h.loadOrders(ctx, ids)
	case ports.IdempotencyPending:
		return nil, errs.NewRequestInProgressError(key)
	}

	orders, shops, err := h.placeOrders(ctx, cmd)
	if err != nil {
		// nothing was written; a failed release expires with the reservation
		_ = h.idempotency.Release(ctx, key)
		return nil, err
	}

	var completeErr error
	if err = h.idempotency.Complete(ctx, key, orderIDs(orders)); err != nil {
		completeErr = errs.NewDependencyFailureError("idempotency store", err)
	}
	notifyErr := h.notify(ctx, cmd.Customer(), orders, shops)

	return orders, errors.Join(notifyErr, completeErr)
}

func (h CreateOrdersCommandHandler) notify(
	ctx context.Context,
	customer order.Customer,
	orders []*order.Order,
	shops []*catalog.Shop,
) error {
	if err := h.notifier.Dispatch(ctx, notificationsFor(customer, orders, shops)); err != nil {
		return errs.NewDependencyFailureError("notification", err)
	}
	return nil
}

func (h CreateOrdersCommandHandler) placeOrders(
	ctx context.Context,
	cmd CreateOrdersCommand,
) ([]*order.Order, []*catalog.Shop, error) {
	groups := h.partitioner.Partition(cmd.Lines())
	shopIDs := make([]kernel.UUID, 0, len(groups))
	for _, g := range groups {
		shopIDs = append(shopIDs, g.ShopID)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	found, err := uow.ShopRepository().GetMany(ctx, shopIDs)
	if err != nil {
		return nil, nil, err
	}
	shops, err := inCartOrder(shopIDs, found)
	if err != nil {
		return nil, nil, err
	}

	orderRepo := uow.OrderRepository()
	now := time.Now().UTC()
	orders := make([]*order.Order, 0, len(groups))
	for _, g := range groups {
		o, err := order.NewOrder(
			kernel.NewUUID(),
			g.ShopID,
			g.Lines,
			cmd.ShippingAddress(),
			cmd.Customer(),
			h.pricing.OrderTotal(g, cmd.CartTotal()),
			cmd.PaymentInfo(),
			now,
		)
		if err != nil {
			return nil, nil, err
		}
		if err = orderRepo.Add(ctx, o); err != nil {
			return nil, nil, err
		}
		orders = append(orders, o)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return orders, shops, nil
}

func (h CreateOrdersCommandHandler) loadOrders(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, err := orderRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func orderIDs(orders []*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}

// inCartOrder lines the shops up with ids; a shop missing from found is not found.
func inCartOrder(ids []kernel.UUID, found []*catalog.Shop) ([]*catalog.Shop, error) {
	byID := make(map[kernel.UUID]*catalog.Shop, len(found))
	for _, s := range found {
		byID[s.ID()] = s
	}

	shops := make([]*catalog.Shop, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("shopId", id)
		}
		shops = append(shops, s)
	}
	return shops, nil
}

// notificationsFor builds one customer summary with every order, then one notification
// per shop carrying only that shop's order. shops[i] belongs to orders[i].
func notificationsFor(customer order.Customer, orders []*order.Order, shops []*catalog.Shop) []ports.Notification {
	notifications := make([]ports.Notification, 0, len(orders)+1)
	notifications = append(notifications, ports.Notification{
		Audience: ports.AudienceCustomer,
		Recipient: ports.Recipient{
			ID:          customer.ID(),
			Name:        customer.Name(),
			Email:       customer.Email(),
			PhoneNumber: customer.PhoneNumber(),
		},
		Orders: orders,
	})

	for i, o := range orders {
		s := shops[i]
		notifications = append(notifications, ports.Notification{
			Audience: ports.AudienceShop,
			Recipient: ports.Recipient{
				ID:          s.ID(),
				Name:        s.Name(),
				Email:       s.Email(),
				PhoneNumber: s.PhoneNumber(),
			},
			Orders: []*order.Order{o},
		})
	}
	return notifications
}

