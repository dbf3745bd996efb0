package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrGetUserOrdersQueryIsNotConstructed is returned for a zero GetUserOrdersQuery.
var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// GetUserOrdersQuery lists the orders a buyer placed, newest first.
type GetUserOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery requires a valid buyer id.
func NewGetUserOrdersQuery(userID kernel.UUID) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return GetUserOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewGetUserOrdersQuery.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID is the buyer whose orders are listed.
func (q GetUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}
