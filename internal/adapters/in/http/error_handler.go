package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/api/servers"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Routes that answer a missing order with 400; storefront clients depend on it.
var notFoundAsBadRequest = map[string]bool{
	"/api/v1/orders/:id/status":         true,
	"/api/v1/orders/:id/refund-request": true,
	"/api/v1/orders/:id/refund-accept":  true,
}

// ErrorHandler writes every handler error as {success:false, message}.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := statusFor(err, c.Path())
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"route", c.Path(),
				"status", code,
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, servers.ErrorResponse{Success: false, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func statusFor(err error, route string) (int, string) {
	var httpErr *echo.HTTPError
	var depErr *errs.DependencyFailureError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.As(err, &depErr):
		return http.StatusInternalServerError, depErr.Message()
	case errors.Is(err, errs.ErrObjectNotFound):
		if notFoundAsBadRequest[route] {
			return http.StatusBadRequest, err.Error()
		}
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrVersionConflict), errors.Is(err, errs.ErrRequestInProgress):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
