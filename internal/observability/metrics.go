// Package observability provides Prometheus collectors and OpenTelemetry tracing setup.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinboard_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pinboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EngagementEvents counts like/save/follow mutations by kind and action.
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinboard_engagement_events_total",
		Help: "Total engagement edge mutations by kind and action",
	}, []string{"kind", "action"})

	// ImageUploads counts blob store uploads by outcome.
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinboard_image_uploads_total",
		Help: "Total image uploads by outcome",
	}, []string{"outcome"})
)

// InitMetrics creates the Fiber Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
