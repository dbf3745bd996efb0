// Package ports defines the contracts between the storefront core and its adapters:
// repositories and the unit of work for persistence, plus the outbound notification,
// payment and idempotency services.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a changed order. It fails with errs.VersionConflictError when the
	// stored order is no longer at aggregate.Version().
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines. A missing order is errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
