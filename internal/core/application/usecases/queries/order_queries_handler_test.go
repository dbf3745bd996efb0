package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type OrderQueriesHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	base      time.Time
}

func (suite *OrderQueriesHandlerTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.orders = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.base = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
}

func (suite *OrderQueriesHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_lines, orders").Error)
}

func (suite *OrderQueriesHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesHandlerTestSuite) TestUserOrders_OnlyThatUserNewestFirst() {
	ctx := context.Background()
	ann, bob := kernel.NewUUID(), kernel.NewUUID()
	shop := kernel.NewUUID()

	older := suite.place(ctx, ann, shop, suite.base)
	newer := suite.place(ctx, ann, shop, suite.base.Add(time.Hour))
	suite.place(ctx, bob, shop, suite.base.Add(2*time.Hour))

	q, err := queries.NewGetUserOrdersQuery(ann)
	suite.Require().NoError(err)
	views, err := queries.NewGetUserOrdersQueryHandler(suite.db).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Require().Len(views, 2)
	suite.Equal(newer.ID(), views[0].ID)
	suite.Equal(older.ID(), views[1].ID)
	suite.Equal(ann, views[0].User.ID)
	suite.Equal("ann@example.com", views[0].User.Email)
	suite.Equal("Springfield", views[0].ShippingAddress.City)
	suite.Equal(order.Processing.String(), views[0].Status)
	suite.Nil(views[0].DeliveredAt)

	suite.Require().Len(views[0].Lines, 2)
	suite.Equal("Mug", views[0].Lines[0].Name)
	suite.Equal("Plate", views[0].Lines[1].Name)
	suite.Equal(shop, views[0].Lines[0].ShopID)
	suite.True(views[0].TotalPrice.Equal(newer.TotalPrice().Amount()))
}

func (suite *OrderQueriesHandlerTestSuite) TestUserOrders_TiesKeepInsertionOrder() {
	ctx := context.Background()
	ann := kernel.NewUUID()

	first := suite.place(ctx, ann, kernel.NewUUID(), suite.base)
	second := suite.place(ctx, ann, kernel.NewUUID(), suite.base)

	q, err := queries.NewGetUserOrdersQuery(ann)
	suite.Require().NoError(err)
	views, err := queries.NewGetUserOrdersQueryHandler(suite.db).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Require().Len(views, 2)
	suite.Equal(first.ID(), views[0].ID)
	suite.Equal(second.ID(), views[1].ID)
}

func (suite *OrderQueriesHandlerTestSuite) TestSellerOrders_OnlyOrdersWithThatShop() {
	ctx := context.Background()
	s1, s2 := kernel.NewUUID(), kernel.NewUUID()

	mine := suite.place(ctx, kernel.NewUUID(), s1, suite.base)
	suite.place(ctx, kernel.NewUUID(), s2, suite.base.Add(time.Minute))

	q, err := queries.NewGetSellerOrdersQuery(s1)
	suite.Require().NoError(err)
	views, err := queries.NewGetSellerOrdersQueryHandler(suite.db).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Require().Len(views, 1)
	suite.Equal(mine.ID(), views[0].ID)
	suite.Equal(s1, views[0].ShopID)
}

func (suite *OrderQueriesHandlerTestSuite) TestSellerOrders_NoneReturnsEmpty() {
	q, err := queries.NewGetSellerOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	views, err := queries.NewGetSellerOrdersQueryHandler(suite.db).Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.NotNil(views)
	suite.Empty(views)
}

func (suite *OrderQueriesHandlerTestSuite) TestAllOrders_DeliveredFirstThenNewest() {
	ctx := context.Background()
	oldProcessing := suite.place(ctx, kernel.NewUUID(), kernel.NewUUID(), suite.base)
	newProcessing := suite.place(ctx, kernel.NewUUID(), kernel.NewUUID(), suite.base.Add(time.Hour))
	earlyDelivered := suite.place(ctx, kernel.NewUUID(), kernel.NewUUID(), suite.base.Add(2*time.Hour))
	lateDelivered := suite.place(ctx, kernel.NewUUID(), kernel.NewUUID(), suite.base.Add(3*time.Hour))

	suite.deliver(ctx, lateDelivered, suite.base.Add(48*time.Hour))
	suite.deliver(ctx, earlyDelivered, suite.base.Add(24*time.Hour))

	views, err := queries.NewGetAllOrdersQueryHandler(suite.db).Handle(ctx, queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(views, 4)
	suite.Equal(lateDelivered.ID(), views[0].ID)
	suite.Equal(earlyDelivered.ID(), views[1].ID)
	suite.Equal(newProcessing.ID(), views[2].ID)
	suite.Equal(oldProcessing.ID(), views[3].ID)

	suite.Require().NotNil(views[0].DeliveredAt)
	suite.Equal(order.PaymentSucceeded, views[0].PaymentInfo.Status)
}

func (suite *OrderQueriesHandlerTestSuite) TestHandlers_RejectUnconstructedQueries() {
	ctx := context.Background()

	_, err := queries.NewGetAllOrdersQueryHandler(suite.db).Handle(ctx, queries.GetAllOrdersQuery{})
	suite.ErrorIs(err, queries.ErrGetAllOrdersQueryIsNotConstructed)
	_, err = queries.NewGetUserOrdersQueryHandler(suite.db).Handle(ctx, queries.GetUserOrdersQuery{})
	suite.ErrorIs(err, queries.ErrGetUserOrdersQueryIsNotConstructed)
	_, err = queries.NewGetSellerOrdersQueryHandler(suite.db).Handle(ctx, queries.GetSellerOrdersQuery{})
	suite.ErrorIs(err, queries.ErrGetSellerOrdersQueryIsNotConstructed)
}

func (suite *OrderQueriesHandlerTestSuite) place(ctx context.Context, userID, shopID kernel.UUID, at time.Time) *order.Order {
	mug, err := order.NewLine(kernel.NewUUID(), shopID, "Mug", 2, kernel.MustMoney("12.50"))
	suite.Require().NoError(err)
	plate, err := order.NewLine(kernel.NewUUID(), shopID, "Plate", 1, kernel.MustMoney("5"))
	suite.Require().NoError(err)
	address, err := order.NewShippingAddress("1 Main St", "Apt 2", "Springfield", "12345", "US", "home")
	suite.Require().NoError(err)
	customer, err := order.NewCustomer(userID, "Ann", "ann@example.com", "")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), shopID, []order.Line{mug, plate}, address, customer,
		kernel.MustMoney("30"), order.NewPaymentInfo("pi_1", "pending", "card"), at,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, o))
	return o
}

func (suite *OrderQueriesHandlerTestSuite) deliver(ctx context.Context, o *order.Order, at time.Time) {
	loaded, err := suite.orders.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Deliver(at))
	suite.Require().NoError(suite.orders.Update(ctx, loaded))
}

func TestOrderQueriesHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesHandlerTestSuite))
}
