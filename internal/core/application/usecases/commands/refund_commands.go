package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrRequestRefundCommandIsNotConstructed = errors.New(
		"RequestRefundCommand must be created via NewRequestRefundCommand constructor",
	)
	ErrAcceptRefundCommandIsNotConstructed = errors.New(
		"AcceptRefundCommand must be created via NewAcceptRefundCommand constructor",
	)
)

// RequestRefundCommand is the buyer asking for a refund. The client sends the target
// status explicitly; only "Refund requested" is accepted.
type RequestRefundCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestRefundCommand accepts only the "Refund requested" status.
func NewRequestRefundCommand(orderID kernel.UUID, status string) (RequestRefundCommand, error) {
	if err := errors.Join(orderID.Validate(), expectStatus(status, order.RefundRequested)); err != nil {
		return RequestRefundCommand{}, err
	}
	return RequestRefundCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the command was built by NewRequestRefundCommand.
func (c RequestRefundCommand) Validate() error {
	return c.guard.Validate(ErrRequestRefundCommandIsNotConstructed)
}

// OrderID identifies the order to refund.
func (c RequestRefundCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AcceptRefundCommand is the seller accepting a refund; only "Refund Success" is accepted.
type AcceptRefundCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptRefundCommand accepts only the "Refund Success" status.
func NewAcceptRefundCommand(orderID kernel.UUID, status string) (AcceptRefundCommand, error) {
	if err := errors.Join(orderID.Validate(), expectStatus(status, order.RefundSuccess)); err != nil {
		return AcceptRefundCommand{}, err
	}
	return AcceptRefundCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the command was built by NewAcceptRefundCommand.
func (c AcceptRefundCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRefundCommandIsNotConstructed)
}

// OrderID identifies the refunded order.
func (c AcceptRefundCommand) OrderID() kernel.UUID {
	return c.orderID
}

func expectStatus(status string, want order.Status) error {
	got, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	if got != want {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("expected %q, got %q", want.String(), got.String()),
		)
	}
	return nil
}
