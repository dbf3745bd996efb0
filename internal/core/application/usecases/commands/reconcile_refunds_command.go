package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrReconcileRefundsCommandIsNotConstructed is returned for a zero ReconcileRefundsCommand.
var ErrReconcileRefundsCommandIsNotConstructed = errors.New(
	"ReconcileRefundsCommand must be created via NewReconcileRefundsCommand constructor",
)

// ReconcileRefundsCommand drains one batch of pending refund reconciliation tasks.
//
// Example:
//
//	cmd, _ := NewReconcileRefundsCommand(50, 5)
//	result, err := handler.Handle(ctx, cmd)
//	for _, failure := range result.Failures {
//	    logger.Error("refund reconciliation failed", "error", failure)
//	}
type ReconcileRefundsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

// NewReconcileRefundsCommand needs a positive batch size. maxAttempts <= 0 retries
// failing tasks forever.
func NewReconcileRefundsCommand(batchSize, maxAttempts int) (ReconcileRefundsCommand, error) {
	if batchSize <= 0 {
		return ReconcileRefundsCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return ReconcileRefundsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command was built by NewReconcileRefundsCommand.
func (c ReconcileRefundsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRefundsCommandIsNotConstructed)
}

// BatchSize caps the tasks taken by one run.
func (c ReconcileRefundsCommand) BatchSize() int {
	return c.batchSize
}

// MaxAttempts is the failure count after which a task is no longer picked up; 0 means
// unlimited.
func (c ReconcileRefundsCommand) MaxAttempts() int {
	return c.maxAttempts
}
