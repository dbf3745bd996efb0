// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	ShopRepoFactory interface {
		ShopRepository() ports.ShopRepository
	}

	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW reads shops and writes the orders of one checkout.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ShopRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// RefundUoW writes an order together with the reconciliation task that follows it.
	RefundUoW interface {
		TxManager
		OrderRepoFactory
		TaskRepoFactory
	}

	RefundUoWFactory interface {
		Create() RefundUoW
	}

	// UoW manages transactions across orders, products, shops and tasks.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   products, err := uow.ProductRepository().GetMany(ctx, ids)
	//   // ... reconcile and update
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		ShopRepoFactory
		TaskRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
