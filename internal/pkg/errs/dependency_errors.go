package errs

import "fmt"

// DependencyFailureError reports a failure of an external collaborator such as the
// notification dispatcher or the payment service.
type DependencyFailureError struct {
	Dependency string
	Cause      error
}

// NewDependencyFailureError names the failed collaborator and keeps its error.
func NewDependencyFailureError(dependency string, cause error) *DependencyFailureError {
	return &DependencyFailureError{Dependency: dependency, Cause: cause}
}

func (e *DependencyFailureError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrDependencyFailure, e.Dependency), e.Cause)
}

// Message is the dependency's own message, the part that is safe to show to a caller.
func (e *DependencyFailureError) Message() string {
	if e.Cause == nil {
		return e.Error()
	}
	return e.Cause.Error()
}

// Unwrap returns ErrDependencyFailure.
func (e *DependencyFailureError) Unwrap() error {
	return ErrDependencyFailure
}

// PartialReconciliationError reports a stock or balance update that failed after the
// order status it belongs to had already been committed.
type PartialReconciliationError struct {
	OrderID any
	TaskID  any
	Cause   error
}

// NewPartialReconciliationError ties a failed task to its order.
func NewPartialReconciliationError(orderID, taskID any, cause error) *PartialReconciliationError {
	return &PartialReconciliationError{OrderID: orderID, TaskID: taskID, Cause: cause}
}

func (e *PartialReconciliationError) Error() string {
	return withCause(
		fmt.Sprintf("%s: order %s, task %s", ErrPartialReconciliation, sanitize(e.OrderID), sanitize(e.TaskID)),
		e.Cause,
	)
}

// Unwrap exposes the sentinel and the cause, so callers can match either.
func (e *PartialReconciliationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPartialReconciliation}
	}
	return []error{ErrPartialReconciliation, e.Cause}
}
