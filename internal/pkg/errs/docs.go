// Package errs provides the typed errors shared by the storefront service.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g., ErrObjectNotFound) used with errors.Is
//   - a struct carrying the details (parameter name, identifier, cause)
//   - constructors with and without a cause
//   - Unwrap returning the sentinel so callers can classify the failure
//
// The sentinels map onto the error taxonomy the HTTP boundary understands:
//   - ErrObjectNotFound: a referenced order, product or shop does not exist
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: malformed input or a
//     rejected state transition, raised before any mutation
//   - ErrVersionConflict: an optimistic concurrency check lost a race
//   - ErrRequestInProgress: a request with the same idempotency key has not finished yet
//   - ErrDependencyFailure: the notification or payment service failed
//   - ErrPartialReconciliation: a stock/balance update failed after the status was persisted
package errs
