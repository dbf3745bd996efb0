package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/reconciliation"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*catalog.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]*catalog.Product)
	return products, args.Error(1)
}

type MockShopRepository struct{ mock.Mock }

func (m *MockShopRepository) Add(ctx context.Context, s *catalog.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopRepository) Update(ctx context.Context, s *catalog.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*catalog.Shop)
	return s, args.Error(1)
}

func (m *MockShopRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Shop, error) {
	args := m.Called(ctx, ids)
	shops, _ := args.Get(0).([]*catalog.Shop)
	return shops, args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, task *reconciliation.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *reconciliation.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) ListPending(ctx context.Context, limit, maxAttempts int) ([]*reconciliation.Task, error) {
	args := m.Called(ctx, limit, maxAttempts)
	tasks, _ := args.Get(0).([]*reconciliation.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) Lock(ctx context.Context, id kernel.UUID) (*reconciliation.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*reconciliation.Task)
	return task, args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) ShopRepository() ports.ShopRepository {
	args := m.Called()
	return args.Get(0).(ports.ShopRepository)
}

func (m *MockUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type orderUoWFactory struct{ f *MockUoWFactory }

func (a orderUoWFactory) Create() commands.OrderUoW { return a.f.Create() }

type checkoutUoWFactory struct{ f *MockUoWFactory }

func (a checkoutUoWFactory) Create() commands.CheckoutUoW { return a.f.Create() }

type refundUoWFactory struct{ f *MockUoWFactory }

func (a refundUoWFactory) Create() commands.RefundUoW { return a.f.Create() }

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, notifications []ports.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string) (ports.IdempotencyState, []kernel.UUID, error) {
	args := m.Called(ctx, key)
	ids, _ := args.Get(1).([]kernel.UUID)
	return args.Get(0).(ports.IdempotencyState), ids, args.Error(2)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key string, ids []kernel.UUID) error {
	args := m.Called(ctx, key, ids)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockPaymentAuthorizer struct{ mock.Mock }

func (m *MockPaymentAuthorizer) Authorize(ctx context.Context, request ports.PaymentRequest) (ports.PaymentIntent, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.PaymentIntent), args.Error(1)
}

// wiredUoW is a MockUoW handing out the given repositories, with Rollback always allowed.
type wiredUoW struct {
	uow      *MockUoW
	orders   *MockOrderRepository
	products *MockProductRepository
	shops    *MockShopRepository
	tasks    *MockTaskRepository
}

func newWiredUoW(ctx context.Context) wiredUoW {
	w := wiredUoW{
		uow:      new(MockUoW),
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		shops:    new(MockShopRepository),
		tasks:    new(MockTaskRepository),
	}
	w.uow.On("OrderRepository").Return(w.orders).Maybe()
	w.uow.On("ProductRepository").Return(w.products).Maybe()
	w.uow.On("ShopRepository").Return(w.shops).Maybe()
	w.uow.On("TaskRepository").Return(w.tasks).Maybe()
	w.uow.On("Rollback", ctx).Return(nil).Maybe()
	return w
}

func (w wiredUoW) assertExpectations(t *testing.T) {
	t.Helper()
	w.uow.AssertExpectations(t)
	w.orders.AssertExpectations(t)
	w.products.AssertExpectations(t)
	w.shops.AssertExpectations(t)
	w.tasks.AssertExpectations(t)
}

func newShop(t *testing.T, name string) *catalog.Shop {
	t.Helper()
	s, err := catalog.NewShop(kernel.NewUUID(), name, name+"@example.com", "555")
	require.NoError(t, err)
	return s
}

func newProduct(t *testing.T, shop *catalog.Shop, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(kernel.NewUUID(), shop.ID(), "product", stock)
	require.NoError(t, err)
	return p
}

func newLine(t *testing.T, p *catalog.Product, quantity int, price string) order.Line {
	t.Helper()
	line, err := order.NewLine(p.ID(), p.ShopID(), p.Name(), quantity, kernel.MustMoney(price))
	require.NoError(t, err)
	return line
}

func newCustomer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer(kernel.NewUUID(), "Ann", "ann@example.com", "123")
	require.NoError(t, err)
	return c
}

func newAddress(t *testing.T) order.ShippingAddress {
	t.Helper()
	a, err := order.NewShippingAddress("Road 1", "", "Dhaka", "1207", "BD", "Home")
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, shop *catalog.Shop, total string, lines ...order.Line) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), shop.ID(), lines, newAddress(t), newCustomer(t),
		kernel.MustMoney(total), order.NewPaymentInfo("pi_1", "Processing", "Card"), time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}
