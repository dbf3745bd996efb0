package http

import (
	"context"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/api/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	refundRequestedMessage = "Order Refund Request successfully!"
	refundAcceptedMessage  = "Order Refund successful!"
)

type (
	createOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]*order.Order, error)
	}
	updateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	requestRefundHandler interface {
		Handle(ctx context.Context, cmd commands.RequestRefundCommand) (*order.Order, error)
	}
	acceptRefundHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptRefundCommand) (*order.Order, error)
	}
	processPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ProcessPaymentCommand) (ports.PaymentIntent, error)
	}
	userOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetUserOrdersQuery) ([]queries.OrderView, error)
	}
	sellerOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetSellerOrdersQuery) ([]queries.OrderView, error)
	}
	allOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderView, error)
	}
)

// Handlers groups the use cases the HTTP surface dispatches to.
type Handlers struct {
	CreateOrders      createOrdersHandler
	UpdateOrderStatus updateOrderStatusHandler
	RequestRefund     requestRefundHandler
	AcceptRefund      acceptRefundHandler
	ProcessPayment    processPaymentHandler
	UserOrders        userOrdersHandler
	SellerOrders      sellerOrdersHandler
	AllOrders         allOrdersHandler
}

// Server implements servers.ServerInterface. Handlers only translate between the wire
// types and the use cases; every error goes to ErrorHandler.
type Server struct {
	handlers              Handlers
	paymentPublishableKey string
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer serves the API with handlers; paymentPublishableKey is returned by
// GET /api/v1/payment/config.
func NewServer(handlers Handlers, paymentPublishableKey string) *Server {
	return &Server{
		handlers:              handlers,
		paymentPublishableKey: paymentPublishableKey,
	}
}

// CreateOrders handles POST /api/v1/orders.
func (s *Server) CreateOrders(ctx echo.Context, params servers.CreateOrdersParams) error {
	var body servers.CreateOrdersJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	idempotencyKey := ""
	if params.IdempotencyKey != nil {
		idempotencyKey = *params.IdempotencyKey
	}

	cmd, err := createOrdersCommand(body, idempotencyKey)
	if err != nil {
		return err
	}

	orders, err := s.handlers.CreateOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.OrdersResponse{
		Success: true,
		Orders:  ordersFromDomain(orders),
	})
}

// GetUserOrders handles GET /api/v1/orders/user/{userId}.
func (s *Server) GetUserOrders(ctx echo.Context, userId openapi_types.UUID) error {
	query, err := queries.NewGetUserOrdersQuery(kernel.UUIDFromGoogle(userId))
	if err != nil {
		return err
	}

	views, err := s.handlers.UserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.OrdersResponse{Success: true, Orders: ordersFromViews(views)})
}

// GetSellerOrders handles GET /api/v1/orders/seller/{shopId}.
func (s *Server) GetSellerOrders(ctx echo.Context, shopId openapi_types.UUID) error {
	query, err := queries.NewGetSellerOrdersQuery(kernel.UUIDFromGoogle(shopId))
	if err != nil {
		return err
	}

	views, err := s.handlers.SellerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.OrdersResponse{Success: true, Orders: ordersFromViews(views)})
}

// GetAllOrders handles GET /api/v1/orders/admin/all. Clients expect 201 here.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	views, err := s.handlers.AllOrders.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.OrdersResponse{Success: true, Orders: ordersFromViews(views)})
}

// UpdateOrderStatus handles PUT /api/v1/orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(kernel.UUIDFromGoogle(id), body.Status)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.OrderResponse{Success: true, Order: orderFromDomain(updated)})
}

// RequestRefund handles PUT /api/v1/orders/{id}/refund-request.
func (s *Server) RequestRefund(ctx echo.Context, id openapi_types.UUID) error {
	var body servers.RequestRefundJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewRequestRefundCommand(kernel.UUIDFromGoogle(id), body.Status)
	if err != nil {
		return err
	}

	updated, err := s.handlers.RequestRefund.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.RefundRequestResponse{
		Success: true,
		Order:   orderFromDomain(updated),
		Message: refundRequestedMessage,
	})
}

// AcceptRefund handles PUT /api/v1/orders/{id}/refund-accept. Stock and balance are
// restored later by the reconciliation job.
func (s *Server) AcceptRefund(ctx echo.Context, id openapi_types.UUID) error {
	var body servers.AcceptRefundJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewAcceptRefundCommand(kernel.UUIDFromGoogle(id), body.Status)
	if err != nil {
		return err
	}

	if _, err = s.handlers.AcceptRefund.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.MessageResponse{Success: true, Message: refundAcceptedMessage})
}

// ProcessPayment handles POST /api/v1/payment/process.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	var body servers.ProcessPaymentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := processPaymentCommand(body)
	if err != nil {
		return err
	}

	intent, err := s.handlers.ProcessPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.PaymentResponse{Success: true, ClientSecret: intent.ClientSecret})
}

// GetPaymentConfig handles GET /api/v1/payment/config.
func (s *Server) GetPaymentConfig(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, servers.PaymentConfig{StripeApikey: s.paymentPublishableKey})
}
