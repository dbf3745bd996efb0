package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Split a cart into one order per shop
	// (POST /api/v1/orders)
	CreateOrders(ctx echo.Context, params CreateOrdersParams) error
	// Every order, most recently delivered first
	// (GET /api/v1/orders/admin/all)
	GetAllOrders(ctx echo.Context) error
	// Orders containing at least one line of a shop, newest first
	// (GET /api/v1/orders/seller/{shopId})
	GetSellerOrders(ctx echo.Context, shopId openapi_types.UUID) error
	// Orders placed by a buyer, newest first
	// (GET /api/v1/orders/user/{userId})
	GetUserOrders(ctx echo.Context, userId openapi_types.UUID) error
	// Seller accepts a refund
	// (PUT /api/v1/orders/{id}/refund-accept)
	AcceptRefund(ctx echo.Context, id openapi_types.UUID) error
	// Buyer asks for a refund
	// (PUT /api/v1/orders/{id}/refund-request)
	RequestRefund(ctx echo.Context, id openapi_types.UUID) error
	// Move an order through its lifecycle
	// (PUT /api/v1/orders/{id}/status)
	UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	// Publishable key of the payment provider
	// (GET /api/v1/payment/config)
	GetPaymentConfig(ctx echo.Context) error
	// Create a payment intent
	// (POST /api/v1/payment/process)
	ProcessPayment(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrders converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrders(ctx echo.Context) error {
	var err error

	var params CreateOrdersParams

	headers := ctx.Request().Header
	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var idempotencyKey string
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &idempotencyKey,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}

		params.IdempotencyKey = &idempotencyKey
	}

	return w.Handler.CreateOrders(ctx, params)
}

// GetAllOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetAllOrders(ctx echo.Context) error {
	return w.Handler.GetAllOrders(ctx)
}

// GetSellerOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetSellerOrders(ctx echo.Context) error {
	shopID, err := bindUUIDPathParam(ctx, "shopId")
	if err != nil {
		return err
	}
	return w.Handler.GetSellerOrders(ctx, shopID)
}

// GetUserOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetUserOrders(ctx echo.Context) error {
	userID, err := bindUUIDPathParam(ctx, "userId")
	if err != nil {
		return err
	}
	return w.Handler.GetUserOrders(ctx, userID)
}

// AcceptRefund converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptRefund(ctx echo.Context) error {
	id, err := bindUUIDPathParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.AcceptRefund(ctx, id)
}

// RequestRefund converts echo context to params.
func (w *ServerInterfaceWrapper) RequestRefund(ctx echo.Context) error {
	id, err := bindUUIDPathParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.RequestRefund(ctx, id)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindUUIDPathParam(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

// GetPaymentConfig converts echo context to params.
func (w *ServerInterfaceWrapper) GetPaymentConfig(ctx echo.Context) error {
	return w.Handler.GetPaymentConfig(ctx)
}

// ProcessPayment converts echo context to params.
func (w *ServerInterfaceWrapper) ProcessPayment(ctx echo.Context) error {
	return w.Handler.ProcessPayment(ctx)
}

func bindUUIDPathParam(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for route registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrders)
	router.GET(baseURL+"/api/v1/orders/admin/all", wrapper.GetAllOrders)
	router.GET(baseURL+"/api/v1/orders/seller/:shopId", wrapper.GetSellerOrders)
	router.GET(baseURL+"/api/v1/orders/user/:userId", wrapper.GetUserOrders)
	router.PUT(baseURL+"/api/v1/orders/:id/refund-accept", wrapper.AcceptRefund)
	router.PUT(baseURL+"/api/v1/orders/:id/refund-request", wrapper.RequestRefund)
	router.PUT(baseURL+"/api/v1/orders/:id/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/v1/payment/config", wrapper.GetPaymentConfig)
	router.POST(baseURL+"/api/v1/payment/process", wrapper.ProcessPayment)
}
