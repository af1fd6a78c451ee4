package middleware

import (
	"net/http"
	"time"

	"github.com/spacewise-io/occupancy-engine/pkg/metrics"
)

// Instrument records request latency and status into Prometheus.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		metrics.ObserveHTTPRequest(r.Method, wrapped.statusCode, time.Since(start))
	})
}
