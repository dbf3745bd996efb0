// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Reconciliation task outcomes used as the result label.
const (
	ResultApplied   = "applied"
	ResultSkipped   = "skipped"
	ResultFailed    = "failed"
	ResultExhausted = "exhausted"
)

// Metrics holds the storefront collectors, registered on one registry.
type Metrics struct {
	Requests            *prometheus.CounterVec
	Latency             *prometheus.HistogramVec
	ReconciliationTasks *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	tasks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciliation_tasks_total",
		Help:      "Refund reconciliation tasks processed, by result.",
	}, []string{"result"})

	reg.MustRegister(requests, latency, tasks)
	for _, result := range []string{ResultApplied, ResultSkipped, ResultFailed, ResultExhausted} {
		tasks.WithLabelValues(result)
	}

	return &Metrics{
		Requests:            requests,
		Latency:             latency,
		ReconciliationTasks: tasks,
		gatherer:            reg,
	}
}

// Middleware records one request count and latency sample per handled request.
// The route label is the registered path template, never the raw URL.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				// the error handler writes the status this request is counted under
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.Latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// RecordReconciliation adds the outcome of one reconciliation batch.
func (m *Metrics) RecordReconciliation(applied, skipped, failed, exhausted int) {
	m.ReconciliationTasks.WithLabelValues(ResultApplied).Add(float64(applied))
	m.ReconciliationTasks.WithLabelValues(ResultSkipped).Add(float64(skipped))
	m.ReconciliationTasks.WithLabelValues(ResultFailed).Add(float64(failed))
	m.ReconciliationTasks.WithLabelValues(ResultExhausted).Add(float64(exhausted))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
