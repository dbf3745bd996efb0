// Package servers holds the HTTP contract of the storefront: the OpenAPI document,
// its request and response types and the echo glue that binds parameters before
// calling a ServerInterface.
//
// The code follows the shape oapi-codegen gives an echo server but is maintained by
// hand next to openapi.yaml; money fields use decimal.Decimal, which the generator
// would not pick on its own.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// CartItem defines model for CartItem.
type CartItem struct {
	Name      string              `json:"name"`
	ProductId openapi_types.UUID  `json:"productId"`
	Quantity  int                 `json:"quantity"`
	ShopId    *openapi_types.UUID `json:"shopId,omitempty"`
	UnitPrice decimal.Decimal     `json:"unitPrice"`
}

// ShippingAddress defines model for ShippingAddress.
type ShippingAddress struct {
	Address1    string  `json:"address1"`
	Address2    *string `json:"address2,omitempty"`
	AddressType *string `json:"addressType,omitempty"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	ZipCode     string  `json:"zipCode"`
}

// User defines model for User.
type User struct {
	Email       string             `json:"email"`
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	PhoneNumber *string            `json:"phoneNumber,omitempty"`
}

// PaymentInfo defines model for PaymentInfo.
type PaymentInfo struct {
	Id     *string `json:"id,omitempty"`
	Status *string `json:"status,omitempty"`
	Type   *string `json:"type,omitempty"`
}

// CreateOrdersRequest defines model for CreateOrdersRequest.
type CreateOrdersRequest struct {
	Cart            []CartItem      `json:"cart"`
	PaymentInfo     *PaymentInfo    `json:"paymentInfo,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	User            User            `json:"user"`
}

// StatusRequest defines model for StatusRequest.
type StatusRequest struct {
	Status string `json:"status"`
}

// Order defines model for Order.
type Order struct {
	Cart            []CartItem         `json:"cart"`
	CreatedAt       time.Time          `json:"createdAt"`
	DeliveredAt     *time.Time         `json:"deliveredAt"`
	Id              openapi_types.UUID `json:"id"`
	PaymentInfo     PaymentInfo        `json:"paymentInfo"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	ShopId          openapi_types.UUID `json:"shopId"`
	Status          string             `json:"status"`
	TotalPrice      decimal.Decimal    `json:"totalPrice"`
	User            User               `json:"user"`
}

// OrdersResponse defines model for OrdersResponse.
type OrdersResponse struct {
	Orders  []Order `json:"orders"`
	Success bool    `json:"success"`
}

// OrderResponse defines model for OrderResponse.
type OrderResponse struct {
	Order   Order `json:"order"`
	Success bool  `json:"success"`
}

// RefundRequestResponse defines model for RefundRequestResponse.
type RefundRequestResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
	Success bool   `json:"success"`
}

// MessageResponse defines model for MessageResponse.
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// CustomerAddress defines model for CustomerAddress.
type CustomerAddress struct {
	Address1 string  `json:"address1"`
	Address2 *string `json:"address2,omitempty"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	ZipCode  string  `json:"zipCode"`
}

// PaymentRequest defines model for PaymentRequest.
type PaymentRequest struct {
	Amount          decimal.Decimal   `json:"amount"`
	Currency        *string           `json:"currency,omitempty"`
	CustomerAddress []CustomerAddress `json:"customerAddress"`
	CustomerName    string            `json:"customerName"`
}

// PaymentResponse defines model for PaymentResponse.
type PaymentResponse struct {
	ClientSecret string `json:"client_secret"`
	Success      bool   `json:"success"`
}

// PaymentConfig defines model for PaymentConfig.
type PaymentConfig struct {
	StripeApikey string `json:"stripeApikey"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// CreateOrdersParams defines parameters for CreateOrders.
type CreateOrdersParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// CreateOrdersJSONRequestBody defines body for CreateOrders for application/json ContentType.
type CreateOrdersJSONRequestBody = CreateOrdersRequest

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = StatusRequest

// RequestRefundJSONRequestBody defines body for RequestRefund for application/json ContentType.
type RequestRefundJSONRequestBody = StatusRequest

// AcceptRefundJSONRequestBody defines body for AcceptRefund for application/json ContentType.
type AcceptRefundJSONRequestBody = StatusRequest

// ProcessPaymentJSONRequestBody defines body for ProcessPayment for application/json ContentType.
type ProcessPaymentJSONRequestBody = PaymentRequest
