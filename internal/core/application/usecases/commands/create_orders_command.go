package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrCreateOrdersCommandIsNotConstructed is returned for a zero CreateOrdersCommand.
var ErrCreateOrdersCommandIsNotConstructed = errors.New(
	"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
)

const maxIdempotencyKeyLength = 255

// CreateOrdersCommand is one checkout: a cart that becomes one order per shop.
//
// Example:
//
//	cmd, err := NewCreateOrdersCommand(lines, address, customer, kernel.MustMoney("300"), payment, "")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	orders, err := handler.Handle(ctx, cmd)
type CreateOrdersCommand struct { //nolint:recvcheck //using for validation
	lines           []order.Line
	shippingAddress order.ShippingAddress
	customer        order.Customer
	cartTotal       kernel.Money
	paymentInfo     order.PaymentInfo
	idempotencyKey  string

	guard guard.ConstructorGuard
}

// NewCreateOrdersCommand validates the checkout. Every line must name its shop; the
// idempotency key is optional. An empty cart is valid and places no orders.
func NewCreateOrdersCommand(
	lines []order.Line,
	shippingAddress order.ShippingAddress,
	customer order.Customer,
	cartTotal kernel.Money,
	paymentInfo order.PaymentInfo,
	idempotencyKey string,
) (CreateOrdersCommand, error) {
	cmd := CreateOrdersCommand{
		shippingAddress: shippingAddress,
		customer:        customer,
		cartTotal:       cartTotal,
		paymentInfo:     paymentInfo,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLines(lines),
		shippingAddress.Validate(),
		customer.Validate(),
		cartTotal.Validate(),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate reports whether the command was built by NewCreateOrdersCommand.
func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

// IsEmpty reports a checkout without cart lines.
func (c CreateOrdersCommand) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart in submission order.
func (c CreateOrdersCommand) Lines() []order.Line {
	lines := make([]order.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// ShippingAddress is copied into every order.
func (c CreateOrdersCommand) ShippingAddress() order.ShippingAddress {
	return c.shippingAddress
}

// Customer is the buyer, copied into every order.
func (c CreateOrdersCommand) Customer() order.Customer {
	return c.customer
}

// CartTotal is the total the client computed for the whole cart.
func (c CreateOrdersCommand) CartTotal() kernel.Money {
	return c.cartTotal
}

// PaymentInfo is the client-side payment result, copied into every order.
func (c CreateOrdersCommand) PaymentInfo() order.PaymentInfo {
	return c.paymentInfo
}

// IdempotencyKey is empty when the client did not send one.
func (c CreateOrdersCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrdersCommand) setLines(lines []order.Line) error {
	var lineErrs []error
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			lineErrs = append(lineErrs, err)
			continue
		}
		if !line.HasShop() {
			lineErrs = append(lineErrs, errs.NewValueIsRequiredErrorWithCause(
				"shopId", fmt.Errorf("cart line %d (%s) has no shop", i, line.Name()),
			))
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.lines = make([]order.Line, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrdersCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 0, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
