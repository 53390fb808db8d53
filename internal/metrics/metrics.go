// Package metrics exposes the Prometheus instruments shared across the
// server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	// EntityOperations counts store mutations per entity and operation.
	EntityOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_operations_total",
			Help: "Total number of entity operations",
		},
		[]string{"entity", "op", "outcome"},
	)
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// CountOperation records one entity operation outcome.
func CountOperation(entity, op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	EntityOperations.WithLabelValues(entity, op, outcome).Inc()
}
