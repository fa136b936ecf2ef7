// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request-level collectors, labeled by route so per-endpoint latency and
// error rates can be graphed separately.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
)

// Domain collectors for the plan calculator and its memoization cache.
// Computation buckets top out at one second; a plan that takes longer
// than that is itself the signal to look at.
var (
	PlanComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_computations_total",
			Help: "Total number of cut plan computations",
		},
		[]string{"status"},
	)

	PlanComputationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_computation_duration_seconds",
			Help:    "Cut plan computation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware observes every request's duration and outcome.
// The route template is preferred over the raw path so /stock-profiles/:id
// stays one series instead of one per document.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// RecordPlanComputation observes one computation's duration and outcome.
func RecordPlanComputation(duration time.Duration, status string) {
	PlanComputationDuration.Observe(duration.Seconds())
	PlanComputationsTotal.WithLabelValues(status).Inc()
}

// RecordCacheOperation counts a cache operation and its result.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics publishes the cache's current fill and capacity.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
