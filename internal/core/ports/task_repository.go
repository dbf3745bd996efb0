package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/reconciliation"
)

// TaskRepository stores reconciliation tasks. Enqueueing happens in the same
// transaction as the status change it follows up on.
type TaskRepository interface {
	Add(ctx context.Context, task *reconciliation.Task) error

	Update(ctx context.Context, task *reconciliation.Task) error

	// ListPending returns up to limit unfinished tasks in enqueue order. Tasks that have
	// already failed maxAttempts times are left out; maxAttempts <= 0 means no limit.
	ListPending(ctx context.Context, limit, maxAttempts int) ([]*reconciliation.Task, error)

	// Lock takes a row lock on an unfinished task for the current transaction. A task that
	// is done or locked by another worker is reported as errs.ObjectNotFoundError.
	Lock(ctx context.Context, id kernel.UUID) (*reconciliation.Task, error)
}
