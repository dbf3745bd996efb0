package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// PaymentAddress is the billing address sent along with a payment intent.
type PaymentAddress struct {
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

// PaymentRequest describes one intent. Amount is expressed in the currency's smallest
// unit (paise for inr), the way storefront clients send it.
type PaymentRequest struct {
	Amount       kernel.Money
	Currency     string
	CustomerName string
	Address      PaymentAddress
}

// PaymentIntent is what the client needs to confirm the payment itself.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentAuthorizer creates payment intents at the payment provider.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, request PaymentRequest) (PaymentIntent, error)
}
