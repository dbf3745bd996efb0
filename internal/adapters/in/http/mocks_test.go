package http

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type mockCreateOrdersHandler struct{ mock.Mock }

func (m *mockCreateOrdersHandler) Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]*order.Order, error) {
	args := m.Called(ctx, cmd)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type mockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *mockUpdateOrderStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockRequestRefundHandler struct{ mock.Mock }

func (m *mockRequestRefundHandler) Handle(ctx context.Context, cmd commands.RequestRefundCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockAcceptRefundHandler struct{ mock.Mock }

func (m *mockAcceptRefundHandler) Handle(ctx context.Context, cmd commands.AcceptRefundCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockProcessPaymentHandler struct{ mock.Mock }

func (m *mockProcessPaymentHandler) Handle(ctx context.Context, cmd commands.ProcessPaymentCommand) (ports.PaymentIntent, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.PaymentIntent), args.Error(1)
}

type mockUserOrdersHandler struct{ mock.Mock }

func (m *mockUserOrdersHandler) Handle(ctx context.Context, query queries.GetUserOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}

type mockSellerOrdersHandler struct{ mock.Mock }

func (m *mockSellerOrdersHandler) Handle(ctx context.Context, query queries.GetSellerOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}

type mockAllOrdersHandler struct{ mock.Mock }

func (m *mockAllOrdersHandler) Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}
