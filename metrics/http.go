package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPBuckets targets a p95 under 200ms. Seconds.
var HTTPBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.2, 0.5, 1, 2}

// HTTPMetrics records request counts and latency by route template.
type HTTPMetrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RequestsInProgress prometheus.Gauge
}

// NewHTTPMetrics registers the collectors on registerer.
func NewHTTPMetrics(namespace string, registerer prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(registerer)

	return &HTTPMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route template, method, and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency histogram by route template",
				Buckets:   HTTPBuckets,
			},
			[]string{"route"},
		),
		RequestsInProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_progress",
				Help:      "Current number of HTTP requests being processed",
			},
		),
	}
}

// RecordRequest records one finished request.
func (m *HTTPMetrics) RecordRequest(route, method string, statusCode int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(NormalizeRoute(route), method, strconv.Itoa(statusCode)).Inc()
	m.RequestDuration.WithLabelValues(NormalizeRoute(route)).Observe(duration.Seconds())
}

// IsHealthCheckEndpoint reports paths that are excluded from HTTP metrics.
func IsHealthCheckEndpoint(path string) bool {
	switch path {
	case "/metrics", "/health", "/healthz", "/readyz", "/livez":
		return true
	}
	return false
}

// NormalizeRoute keeps label cardinality bounded: unmatched paths share one
// label instead of one per raw URL.
func NormalizeRoute(route string) string {
	if route == "" {
		return "unknown"
	}
	return route
}

// Middleware records every request except health checks. The route label is
// gin's template (e.g. /api/items/:id), never the raw path.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsHealthCheckEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}
		start := time.Now()
		m.RequestsInProgress.Inc()
		defer m.RequestsInProgress.Dec()

		c.Next()

		m.RecordRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
