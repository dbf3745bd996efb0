package commands

import (
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// PricingPolicy decides the totalPrice written on each order of a multi-shop checkout.
type PricingPolicy string

const (
	// PricingSubtotal prices each order at the sum of its own lines.
	PricingSubtotal PricingPolicy = "subtotal"

	// PricingCartTotal copies the cart's total onto every order. Older storefront
	// clients rely on it.
	PricingCartTotal PricingPolicy = "cart-total"
)

// ParsePricingPolicy accepts the configuration value; empty means PricingSubtotal.
func ParsePricingPolicy(s string) (PricingPolicy, error) {
	switch p := PricingPolicy(strings.TrimSpace(s)); p {
	case "":
		return PricingSubtotal, nil
	case PricingSubtotal, PricingCartTotal:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("pricing policy", fmt.Errorf("unknown policy %q", s))
	}
}

// OrderTotal returns the totalPrice of the order built from group.
func (p PricingPolicy) OrderTotal(group services.OrderGroup, cartTotal kernel.Money) kernel.Money {
	if p == PricingCartTotal {
		return cartTotal
	}
	return group.Subtotal()
}
