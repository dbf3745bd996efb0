package errs

import "fmt"

// RequestInProgressError reports an idempotency key held by a request that has not
// completed. Retrying after it completes replays its result.
type RequestInProgressError struct {
	Key string
}

// NewRequestInProgressError reports key as held by a running request.
func NewRequestInProgressError(key string) *RequestInProgressError {
	return &RequestInProgressError{Key: key}
}

func (e *RequestInProgressError) Error() string {
	return fmt.Sprintf("%s: idempotency key %s is still being processed", ErrRequestInProgress, sanitize(e.Key))
}

// Unwrap returns ErrRequestInProgress.
func (e *RequestInProgressError) Unwrap() error {
	return ErrRequestInProgress
}
