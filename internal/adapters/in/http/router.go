package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"storefront/internal/api/servers"
	"storefront/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

// swaggerDoc serves the OpenAPI document to the Swagger UI.
type swaggerDoc string

// ReadDoc implements swag.Swagger.
func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

// NewRouter builds the echo instance: API routes validated against the OpenAPI
// document, plus /health, /metrics and /swagger/*.
func NewRouter(server *Server, m *metrics.Metrics, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load OpenAPI document: %w", err)
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(requestLogger(logger))
	e.Use(m.Middleware())
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}

func registerSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode OpenAPI document: %w", err)
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(raw))
	})
	return nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.DebugContext(c.Request().Context(), "Request handled",
				"method", c.Request().Method,
				"route", c.Path(),
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return err
		}
	}
}
