// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	eventsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "occupancy_engine",
		Subsystem: "ingest",
		Name:      "events_total",
		Help:      "Occupancy events processed, labeled by outcome.",
	}, []string{"result"})

	cacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "occupancy_engine",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Aggregate cache lookups, labeled by hit or miss.",
	}, []string{"result"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "occupancy_engine",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(eventsIngested, cacheRequests, httpDuration)
}

// RecordEventsIngested adds n to the ingestion counter for the given outcome
// ("persisted" or "dropped").
func RecordEventsIngested(result string, n int) {
	if n <= 0 {
		return
	}
	eventsIngested.WithLabelValues(result).Add(float64(n))
}

// RecordCacheResult counts a cache lookup outcome ("hit" or "miss").
func RecordCacheResult(result string) {
	cacheRequests.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records the latency of a completed HTTP request.
func ObserveHTTPRequest(method string, status int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
