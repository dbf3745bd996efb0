package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/kafka/notifier"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/redis/idempotency"
	"storefront/internal/adapters/out/stripe"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived dependencies of the service and builds every
// handler, the HTTP router and the job manager from them.
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	pricing    commands.PricingPolicy
	metrics    *metrics.Metrics

	notifier    *notifier.Notifier
	redisClient *redis.Client
	idempotency ports.IdempotencyStore
	authorizer  *stripe.Authorizer
}

// NewCompositionRoot wires the adapters described by config. Redis is optional; without
// it idempotency keys are ignored.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	pricing, err := commands.ParsePricingPolicy(config.PricingPolicy)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	root := &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    pricing,
		metrics:    metrics.New(registry),
		notifier: notifier.NewNotifier(
			notifier.NewWriter(config.KafkaBrokers, config.KafkaNotificationsTopic),
			logger,
		),
		authorizer: stripe.NewAuthorizer(config.StripeSecretKey),
	}

	if config.RedisAddr != "" {
		root.redisClient = idempotency.NewClient(config.RedisAddr, config.RedisPassword, config.RedisDB)
		root.idempotency = idempotency.NewRedisStore(root.redisClient, config.IdempotencyTTL)
	} else {
		logger.Warn("REDIS_ADDR is not set, idempotency keys are ignored")
	}

	return root, nil
}

// CreateCreateOrdersCommandHandler builds the checkout handler.
func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrdersCommandHandler(f, c.notifier, c.idempotency, c.pricing)
}

// CreateUpdateOrderStatusCommandHandler builds the handover and delivery handler.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

// CreateRequestRefundCommandHandler builds the buyer refund handler.
func (c *CompositionRoot) CreateRequestRefundCommandHandler() commands.RequestRefundCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestRefundCommandHandler(f)
}

// CreateAcceptRefundCommandHandler builds the seller refund handler.
func (c *CompositionRoot) CreateAcceptRefundCommandHandler() commands.AcceptRefundCommandHandler {
	var f commands.RefundUoWFactory = FuncRefundUoWFactory(func() commands.RefundUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptRefundCommandHandler(f)
}

// CreateReconcileRefundsCommandHandler builds the outbox drain used by the reconciliation job.
func (c *CompositionRoot) CreateReconcileRefundsCommandHandler() commands.ReconcileRefundsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileRefundsCommandHandler(f)
}

// CreateProcessPaymentCommandHandler builds the payment intent handler.
func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(c.authorizer, c.config.PaymentDefaultCurrency)
}

// CreateGetUserOrdersQueryHandler builds the buyer listing.
func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

// CreateGetSellerOrdersQueryHandler builds the seller listing.
func (c *CompositionRoot) CreateGetSellerOrdersQueryHandler() queries.GetSellerOrdersQueryHandler {
	return queries.NewGetSellerOrdersQueryHandler(c.gormDB)
}

// CreateGetAllOrdersQueryHandler builds the admin listing.
func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

// CreateRouter wires every use case behind the HTTP surface.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrders:      c.CreateCreateOrdersCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		RequestRefund:     c.CreateRequestRefundCommandHandler(),
		AcceptRefund:      c.CreateAcceptRefundCommandHandler(),
		ProcessPayment:    c.CreateProcessPaymentCommandHandler(),
		UserOrders:        c.CreateGetUserOrdersQueryHandler(),
		SellerOrders:      c.CreateGetSellerOrdersQueryHandler(),
		AllOrders:         c.CreateGetAllOrdersQueryHandler(),
	}, c.config.StripePublishableKey)

	return httpin.NewRouter(server, c.metrics, c.logger)
}

// CreateJobManager builds the scheduled jobs; it fails on an invalid schedule.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateReconcileRefundsCommandHandler(),
		c.metrics,
		jobs.Config{
			Schedule:    c.config.ReconciliationSchedule,
			BatchSize:   c.config.ReconciliationBatchSize,
			MaxAttempts: c.config.ReconciliationMaxAttempts,
		},
		c.logger,
	)
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	if err := c.notifier.Close(); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("close notifier: %w", err))
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(closeErrs...)
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncCheckoutUoWFactory adapts a function to commands.CheckoutUoWFactory.
type FuncCheckoutUoWFactory func() commands.CheckoutUoW

// Create calls f.
func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

// FuncRefundUoWFactory adapts a function to commands.RefundUoWFactory.
type FuncRefundUoWFactory func() commands.RefundUoW

// Create calls f.
func (f FuncRefundUoWFactory) Create() commands.RefundUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

// Create calls f.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
