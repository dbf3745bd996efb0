package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

// ErrGetAllOrdersQueryIsNotConstructed is returned for a zero GetAllOrdersQuery.
var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery is the admin listing of every order.
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates the query; it takes no parameters.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate reports whether the query was built by NewGetAllOrdersQuery.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}
