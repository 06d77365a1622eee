package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	operationSuccess = "success"
	operationError   = "error"
)

// Metrics holds the Prometheus collectors of the HTTP surface.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	orderOperations     *prometheus.CounterVec
}

// NewMetrics registers the collectors on registry and serves them from it.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		gatherer: registry,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodtruck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foodtruck_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "path", "status"},
		),
		orderOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodtruck_order_operations_total",
				Help: "Total number of order operations",
			},
			[]string{"operation", "status"},
		),
	}
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			m.httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			m.httpRequestDuration.WithLabelValues(c.Request().Method, path, status).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// RecordOrderOperation counts one order operation by outcome.
func (m *Metrics) RecordOrderOperation(operation string, success bool) {
	status := operationSuccess
	if !success {
		status = operationError
	}
	m.orderOperations.WithLabelValues(operation, status).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
