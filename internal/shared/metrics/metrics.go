package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-closures/internal/pkg/closures"
	"go-closures/internal/shared/logger"
)

// Outcome label values
const (
	OutcomeOK                = "ok"
	OutcomeInvalidAmount     = "invalid_amount"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeError             = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Closure metrics
	instancesTotal  *prometheus.CounterVec
	operationsTotal *prometheus.CounterVec

	// System metrics
	uptime prometheus.Gauge

	logger *logger.Logger
}

// New creates a new metrics instance backed by its own registry
func New(logger *logger.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   logger.Named("metrics"),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(m.registry)
	m.initHTTPMetrics(factory)
	m.initClosureMetrics(factory)
	m.initSystemMetrics(factory)

	m.logger.Info("Metrics initialized")

	return m
}

// initHTTPMetrics initializes HTTP-related metrics
func (m *Metrics) initHTTPMetrics(factory promauto.Factory) {
	m.httpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	m.httpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	m.httpRequestsInFlight = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "endpoint"},
	)
}

// initClosureMetrics initializes factory and operation metrics
func (m *Metrics) initClosureMetrics(factory promauto.Factory) {
	m.instancesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closure_instances_total",
			Help: "Total number of factory invocations",
		},
		[]string{"factory"},
	)

	m.operationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closure_operations_total",
			Help: "Total number of operations invoked on factory instances",
		},
		[]string{"factory", "operation", "outcome"},
	)
}

// initSystemMetrics initializes system metrics
func (m *Metrics) initSystemMetrics(factory promauto.Factory) {
	m.uptime = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Closure Metrics Methods

// Observe records a factory invocation or an operation on an instance.
// It satisfies closures.Observer.
func (m *Metrics) Observe(factory, operation string, err error) {
	if operation == closures.OpCreate {
		m.instancesTotal.WithLabelValues(factory).Inc()
		return
	}
	m.operationsTotal.WithLabelValues(factory, operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, closures.ErrInvalidAmount):
		return OutcomeInvalidAmount
	case errors.Is(err, closures.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	default:
		return OutcomeError
	}
}

// HTTP Metrics Methods

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments the number of in-flight HTTP requests
func (m *Metrics) IncrementHTTPRequestsInFlight(method, endpoint string) {
	m.httpRequestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// DecrementHTTPRequestsInFlight decrements the number of in-flight HTTP requests
func (m *Metrics) DecrementHTTPRequestsInFlight(method, endpoint string) {
	m.httpRequestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// System Metrics Methods

// RecordUptime records the application uptime
func (m *Metrics) RecordUptime(uptime time.Duration) {
	m.uptime.Set(uptime.Seconds())
}

// GinMiddleware returns a Gin middleware for collecting HTTP metrics
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.IncrementHTTPRequestsInFlight(method, path)
		defer m.DecrementHTTPRequestsInFlight(method, path)

		c.Next()

		m.RecordHTTPRequest(method, path, c.Writer.Status(), time.Since(start))
	}
}

// GinMetricsHandler returns a Gin handler for the metrics endpoint
func (m *Metrics) GinMetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
