package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// IdempotencyState is what Reserve found under a key.
type IdempotencyState int

const (
	// IdempotencyReserved means the caller now holds the key and must Complete or Release it.
	IdempotencyReserved IdempotencyState = iota
	// IdempotencyPending means another request holds the key and has not completed.
	IdempotencyPending
	// IdempotencyCompleted means the key belongs to a finished checkout; ids are its orders.
	IdempotencyCompleted
)

// IdempotencyStore makes checkout requests with the same client key create orders once.
//
// Reserve claims the key atomically before any order is written, so two concurrent
// requests cannot both create orders.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (state IdempotencyState, ids []kernel.UUID, err error)

	// Complete stores the ids of the orders created under a reserved key.
	Complete(ctx context.Context, key string, ids []kernel.UUID) error

	// Release frees a reserved key whose checkout failed so the client can retry.
	Release(ctx context.Context, key string) error
}
