package commands

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ProcessPaymentCommandHandler creates a payment intent and returns it to the caller.
// Provider failures are reported as errs.DependencyFailureError.
type ProcessPaymentCommandHandler struct {
	authorizer      ports.PaymentAuthorizer
	defaultCurrency string
}

// NewProcessPaymentCommandHandler charges in defaultCurrency when a request names no
// currency; an empty defaultCurrency means DefaultCurrency.
func NewProcessPaymentCommandHandler(authorizer ports.PaymentAuthorizer, defaultCurrency string) ProcessPaymentCommandHandler {
	defaultCurrency = strings.ToLower(strings.TrimSpace(defaultCurrency))
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	return ProcessPaymentCommandHandler{authorizer: authorizer, defaultCurrency: defaultCurrency}
}

// Handle asks the provider for an intent, filling in the default currency.
func (h ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) (ports.PaymentIntent, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PaymentIntent{}, err
	}

	request := cmd.Request()
	if request.Currency == "" {
		request.Currency = h.defaultCurrency
	}

	intent, err := h.authorizer.Authorize(ctx, request)
	if err != nil {
		if errors.Is(err, errs.ErrDependencyFailure) {
			return ports.PaymentIntent{}, err
		}
		return ports.PaymentIntent{}, errs.NewDependencyFailureError("payment", err)
	}

	return intent, nil
}
