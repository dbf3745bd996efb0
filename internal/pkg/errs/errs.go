package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound        = errors.New("object not found")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsOutOfRange     = errors.New("value is out of range")
	ErrValueIsRequired       = errors.New("value is required")
	ErrVersionConflict       = errors.New("version conflict")
	ErrDependencyFailure     = errors.New("dependency failure")
	ErrPartialReconciliation = errors.New("partial reconciliation")
	ErrRequestInProgress     = errors.New("request in progress")
)

// withCause appends the cause to a formatted message when there is one.
func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause.Error())
}

// sanitize flattens values that end up inside single-line error messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
