package order

import (
	"fmt"
	"slices"

	"storefront/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The persisted form is the display string
// used by the storefront clients.
type Status string

const (
	// Unknown is the zero value and never valid.
	Unknown Status = ""

	// Processing is the initial status of every order.
	Processing Status = "Processing"

	// TransferredToDeliveryPartner means the goods left the seller; stock is committed here.
	TransferredToDeliveryPartner Status = "Transferred to delivery partner"

	// Delivered is the success terminal state; the seller is paid out here.
	Delivered Status = "Delivered"

	// RefundRequested marks the buyer's intent only.
	RefundRequested Status = "Refund requested"

	// RefundSuccess is the refund terminal state; stock and payout are reversed.
	RefundSuccess Status = "Refund Success"
)

// PaymentSucceeded is written into PaymentInfo.Status on delivery.
const PaymentSucceeded = "Succeeded"

// transitions lists, per state, the states it may move to.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Processing:                   {TransferredToDeliveryPartner, Delivered, RefundRequested},
		TransferredToDeliveryPartner: {Delivered, RefundRequested},
		Delivered:                    {RefundRequested},
		RefundRequested:              {RefundSuccess},
		RefundSuccess:                {},
	}
}

// ParseStatus converts client input into a Status, rejecting anything outside the closed set.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return Unknown, err
	}
	return status, nil
}

// Validate rejects statuses outside the closed set.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire form, e.g. "Transferred to delivery partner".
func (s Status) String() string {
	if s == Unknown {
		return "Unknown"
	}
	return string(s)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions()[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions()[s], next)
}

// TransitionTo validates the step s -> next and returns next.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status transition is invalid",
			fmt.Errorf("%s cannot move to %s", s.String(), next.String()),
		)
	}
	return next, nil
}
