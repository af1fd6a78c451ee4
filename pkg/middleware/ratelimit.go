package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// IPRateLimiter enforces a token-bucket limit per client IP.
// Ingestion routes get a high-volume budget for sensor fleets; read routes
// get a much tighter one.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
	message string
}

// NewIPRateLimiter creates a limiter refilling at limit tokens/second with
// the given burst. message is returned in the 429 envelope.
func NewIPRateLimiter(limit rate.Limit, burst int, message string) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
		message: message,
	}
}

// Wrap applies the limit to a handler func.
func (l *IPRateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.limiterFor(clientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   l.message,
			})
			return
		}
		next(w, r)
	}
}

func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.clients[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.clients[ip] = limiter
	}
	return limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
