package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrProcessPaymentCommandIsNotConstructed is returned for a zero ProcessPaymentCommand.
var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// DefaultCurrency is used when neither the client nor the configuration names one.
const DefaultCurrency = "inr"

// ProcessPaymentCommand asks the payment provider for a payment intent.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	request ports.PaymentRequest

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand validates a payment request. currency may be empty, the
// handler then applies its configured default.
func NewProcessPaymentCommand(
	amount kernel.Money,
	currency string,
	customerName string,
	address ports.PaymentAddress,
) (ProcessPaymentCommand, error) {
	var amountErr error
	if err := amount.Validate(); err != nil {
		amountErr = err
	} else if amount.IsZero() {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount.String(), "0.01", "unbounded")
	}

	var nameErr error
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		nameErr = errs.NewValueIsRequiredError("customer name")
	}

	if err := errors.Join(amountErr, nameErr); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return ProcessPaymentCommand{
		request: ports.PaymentRequest{
			Amount:       amount,
			Currency:     strings.ToLower(strings.TrimSpace(currency)),
			CustomerName: customerName,
			Address:      address,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command was built by NewProcessPaymentCommand.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// Request is the provider request; Currency is empty when the client named none.
func (c ProcessPaymentCommand) Request() ports.PaymentRequest {
	return c.request
}
