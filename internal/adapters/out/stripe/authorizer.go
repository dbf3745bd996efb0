// Package stripe creates payment intents through the Stripe API.
package stripe

import (
	"context"
	"errors"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const description = "Storefront order payment"

// intentCreator is the part of the Stripe payment intent client in use.
type intentCreator interface {
	New(params *stripeapi.PaymentIntentParams) (*stripeapi.PaymentIntent, error)
}

// Authorizer implements ports.PaymentAuthorizer.
type Authorizer struct {
	intents intentCreator
}

// NewAuthorizer creates an authorizer for the given secret key.
func NewAuthorizer(secretKey string) *Authorizer {
	return &Authorizer{intents: client.New(secretKey, nil).PaymentIntents}
}

// Authorize creates a PaymentIntent and returns its client secret.
func (a *Authorizer) Authorize(ctx context.Context, request ports.PaymentRequest) (ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:      stripeapi.Int64(request.Amount.Amount().Round(0).IntPart()),
		Currency:    stripeapi.String(request.Currency),
		Description: stripeapi.String(description),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeapi.Bool(true),
		},
		Shipping: &stripeapi.ShippingDetailsParams{
			Name: stripeapi.String(request.CustomerName),
			Address: &stripeapi.AddressParams{
				Line1:      stripeapi.String(request.Address.Line1),
				Line2:      stripeapi.String(request.Address.Line2),
				City:       stripeapi.String(request.Address.City),
				State:      stripeapi.String(request.Address.City),
				PostalCode: stripeapi.String(request.Address.PostalCode),
				Country:    stripeapi.String(request.Address.Country),
			},
		},
	}
	params.Context = ctx

	intent, err := a.intents.New(params)
	if err != nil {
		var apiErr *stripeapi.Error
		if errors.As(err, &apiErr) && apiErr.Msg != "" {
			return ports.PaymentIntent{}, errs.NewDependencyFailureError("payment", errors.New(apiErr.Msg))
		}
		return ports.PaymentIntent{}, errs.NewDependencyFailureError("payment", err)
	}

	return ports.PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
