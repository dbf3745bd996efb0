package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/reconciliation"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_lines, orders, products, shops, reconciliation_tasks").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.ShopRepository())
	suite.NotNil(uow1.TaskRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors_WithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestHandOver_CommitsOrderAndStockTogether() {
	ctx := context.Background()
	shop, product, o := suite.seed(ctx, 10, 4)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	products, err := uow.ProductRepository().GetMany(ctx, []kernel.UUID{product.ID()})
	suite.Require().NoError(err)

	suite.Require().NoError(services.NewReconciler().HandOver(loaded, products))
	suite.Require().NoError(uow.ProductRepository().Update(ctx, products[0]))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Equal(2, uow.(*postgres_adapter.GormUnitOfWork).TrackedCount())
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	gotProduct, err := reader.ProductRepository().Get(ctx, product.ID())
	suite.Require().NoError(err)
	suite.Equal(6, gotProduct.Stock())
	suite.Equal(4, gotProduct.SoldOut())

	gotOrder, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.TransferredToDeliveryPartner, gotOrder.Status())
	suite.True(gotOrder.StockCommitted())

	gotShop, err := reader.ShopRepository().Get(ctx, shop.ID())
	suite.Require().NoError(err)
	suite.True(gotShop.AvailableBalance().IsZero())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryRepository() {
	ctx := context.Background()
	_, product, o := suite.seed(ctx, 10, 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.RequestRefund())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))

	task, err := reconciliation.NewTask(kernel.NewUUID(), o.ID(), reconciliation.KindRefund, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TaskRepository().Add(ctx, task))

	p, err := uow.ProductRepository().Get(ctx, product.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(p.Sell(1))
	suite.Require().NoError(uow.ProductRepository().Update(ctx, p))

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Equal(0, uow.(*postgres_adapter.GormUnitOfWork).TrackedCount())

	reader := suite.factory.Create()
	gotOrder, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, gotOrder.Status())

	gotProduct, err := reader.ProductRepository().Get(ctx, product.ID())
	suite.Require().NoError(err)
	suite.Equal(10, gotProduct.Stock())

	pending, err := reader.TaskRepository().ListPending(ctx, 10, 0)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUnitsOfWork_SecondWriterLoses() {
	ctx := context.Background()
	shop, _, _ := suite.seed(ctx, 1, 1)

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	a, err := first.ShopRepository().Get(ctx, shop.ID())
	suite.Require().NoError(err)
	b, err := second.ShopRepository().Get(ctx, shop.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.Credit(kernel.MustMoney("90")))
	suite.Require().NoError(first.ShopRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(b.Credit(kernel.MustMoney("45")))
	err = second.ShopRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)

	got, err := suite.factory.Create().ShopRepository().Get(ctx, shop.ID())
	suite.Require().NoError(err)
	suite.True(got.AvailableBalance().IsEqual(kernel.MustMoney("90")))
}

// seed stores a shop, one product with the given stock and a Processing order for qty
// units of that product.
func (suite *UnitOfWorkIntegrationTestSuite) seed(ctx context.Context, stock, qty int) (*catalog.Shop, *catalog.Product, *order.Order) {
	shop, err := catalog.NewShop(kernel.NewUUID(), "Corner Store", "shop@example.com", "+1555")
	suite.Require().NoError(err)
	product, err := catalog.NewProduct(kernel.NewUUID(), shop.ID(), "Lamp", stock)
	suite.Require().NoError(err)

	line, err := order.NewLine(product.ID(), shop.ID(), product.Name(), qty, kernel.MustMoney("25"))
	suite.Require().NoError(err)
	address, err := order.NewShippingAddress("1 Main St", "", "Springfield", "12345", "US", "home")
	suite.Require().NoError(err)
	customer, err := order.NewCustomer(kernel.NewUUID(), "Ann", "ann@example.com", "")
	suite.Require().NoError(err)
	o, err := order.NewOrder(
		kernel.NewUUID(), shop.ID(), []order.Line{line}, address, customer,
		line.Subtotal(), order.NewPaymentInfo("pi_1", "pending", "card"), time.Now().UTC(),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShopRepository().Add(ctx, shop))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, product))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	return shop, product, o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
