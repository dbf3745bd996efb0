package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrGetSellerOrdersQueryIsNotConstructed is returned for a zero GetSellerOrdersQuery.
var ErrGetSellerOrdersQueryIsNotConstructed = errors.New(
	"GetSellerOrdersQuery must be created via NewGetSellerOrdersQuery constructor",
)

// GetSellerOrdersQuery lists the orders containing at least one line of a shop.
type GetSellerOrdersQuery struct {
	shopID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSellerOrdersQuery requires a valid shop id.
func NewGetSellerOrdersQuery(shopID kernel.UUID) (GetSellerOrdersQuery, error) {
	if err := shopID.Validate(); err != nil {
		return GetSellerOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}
	return GetSellerOrdersQuery{shopID: shopID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewGetSellerOrdersQuery.
func (q GetSellerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerOrdersQueryIsNotConstructed)
}

// ShopID is the shop whose orders are listed.
func (q GetSellerOrdersQuery) ShopID() kernel.UUID {
	return q.shopID
}
