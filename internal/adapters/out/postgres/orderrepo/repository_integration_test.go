package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_lines, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderAndLines() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	var orders, lines int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orders).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderLineDTO{}).Count(&lines).Error)
	suite.Equal(int64(1), orders)
	suite.Equal(int64(2), lines)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsEveryField() {
	ctx := context.Background()
	shopID := kernel.NewUUID()
	o := suite.newOrder(shopID)
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(o.IsEqual(got))
	suite.Equal(shopID, got.ShopID())
	suite.Equal(order.Processing, got.Status())
	suite.True(got.TotalPrice().IsEqual(kernel.MustMoney("130.00")))
	suite.True(got.SettledAmount().IsZero())
	suite.False(got.StockCommitted())
	suite.Nil(got.DeliveredAt())
	suite.Equal(int64(0), got.Version())
	suite.Equal(o.Customer().Email(), got.Customer().Email())
	suite.Equal(o.ShippingAddress().City(), got.ShippingAddress().City())
	suite.Equal("pi_123", got.PaymentInfo().ID())

	suite.Require().Len(got.Lines(), 2)
	suite.Equal("Mug", got.Lines()[0].Name())
	suite.Equal(2, got.Lines()[0].Quantity())
	suite.Equal("Plate", got.Lines()[1].Name())
	suite.True(got.Lines()[1].UnitPrice().IsEqual(kernel.MustMoney("30")))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFound() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndBumpsVersion() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.TransferToDeliveryPartner())
	deliveredAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().NoError(loaded.Deliver(deliveredAt))
	suite.Require().NoError(loaded.RecordSettlement(kernel.MustMoney("117")))

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())
	suite.True(got.StockCommitted())
	suite.True(got.SettledAmount().IsEqual(kernel.MustMoney("117")))
	suite.Equal(order.PaymentSucceeded, got.PaymentInfo().Status())
	suite.Require().NotNil(got.DeliveredAt())
	suite.True(deliveredAt.Equal(*got.DeliveredAt()))
	suite.Equal(int64(1), got.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.TransferToDeliveryPartner())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.RequestRefund())
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.TransferredToDeliveryPartner, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder(kernel.NewUUID()))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Rejected() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(shopID kernel.UUID) *order.Order {
	mug, err := order.NewLine(kernel.NewUUID(), shopID, "Mug", 2, kernel.MustMoney("50"))
	suite.Require().NoError(err)
	plate, err := order.NewLine(kernel.NewUUID(), shopID, "Plate", 1, kernel.MustMoney("30"))
	suite.Require().NoError(err)

	address, err := order.NewShippingAddress("1 Main St", "", "Springfield", "12345", "US", "home")
	suite.Require().NoError(err)
	customer, err := order.NewCustomer(kernel.NewUUID(), "Ann", "ann@example.com", "+100")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		shopID,
		[]order.Line{mug, plate},
		address,
		customer,
		kernel.MustMoney("130.00"),
		order.NewPaymentInfo("pi_123", "requires_capture", "card"),
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
