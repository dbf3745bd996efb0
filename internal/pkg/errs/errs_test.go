package errs_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shopId", "123")

		assert.Equal(t, "shopId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("shopId", "123", cause)

		assert.Equal(t, "shopId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shopId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("customer.email")

		assert.Equal(t, "customer.email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: customer.email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("customer.email", cause)

		assert.Equal(t, "customer.email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: customer.email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 0, 120)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("stock", -5, 0, 100, cause)

		assert.Equal(t, "stock", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is stock, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("productId")

		assert.Equal(t, "productId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: productId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("productId", cause)

		assert.Equal(t, "productId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: productId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestVersionConflictError(t *testing.T) {
	err := errs.NewVersionConflictError("product", "p-1", 3)

	assert.Equal(t, "product", err.Entity)
	assert.Equal(t, "p-1", err.ID)
	assert.Equal(t, int64(3), err.Version)
	assert.Equal(t, "version conflict: product p-1 is no longer at version 3", err.Error())
	assert.Equal(t, errs.ErrVersionConflict, err.Unwrap())
}

func TestRequestInProgressError(t *testing.T) {
	err := errs.NewRequestInProgressError("checkout\n1")

	assert.Equal(t, "checkout\n1", err.Key)
	assert.Equal(t, "request in progress: idempotency key checkout 1 is still being processed", err.Error())
	assert.ErrorIs(t, err, errs.ErrRequestInProgress)
}

func TestDependencyFailureError(t *testing.T) {
	t.Run("with cause exposes the dependency message", func(t *testing.T) {
		cause := errors.New("broker unreachable")
		err := errs.NewDependencyFailureError("notifications", cause)

		assert.Equal(t, "notifications", err.Dependency)
		assert.Equal(t, "dependency failure: notifications (cause: broker unreachable)", err.Error())
		assert.Equal(t, "broker unreachable", err.Message())
		assert.Equal(t, errs.ErrDependencyFailure, err.Unwrap())
	})

	t.Run("without cause falls back to the full message", func(t *testing.T) {
		err := errs.NewDependencyFailureError("payments", nil)

		assert.Equal(t, "dependency failure: payments", err.Message())
	})
}

func TestPartialReconciliationError(t *testing.T) {
	cause := errors.New("stock exhausted")
	err := errs.NewPartialReconciliationError("o-1", "t-1", cause)

	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "partial reconciliation: order o-1, task t-1 (cause: stock exhausted)", err.Error())
	require.ErrorIs(t, err, errs.ErrPartialReconciliation)
	require.ErrorIs(t, err, cause)
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionConflict)
		require.Error(t, errs.ErrDependencyFailure)
		require.Error(t, errs.ErrPartialReconciliation)
		require.Error(t, errs.ErrRequestInProgress)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version conflict", errs.ErrVersionConflict.Error())
		assert.Equal(t, "dependency failure", errs.ErrDependencyFailure.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("shopId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("customer.email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("quantity", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("productId")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		conflictErr := errs.NewVersionConflictError("shop", "s-1", 1)
		require.ErrorIs(t, conflictErr, errs.ErrVersionConflict)

		dependencyErr := errs.NewDependencyFailureError("payments", errors.New("test"))
		require.ErrorIs(t, dependencyErr, errs.ErrDependencyFailure)
	})
}
