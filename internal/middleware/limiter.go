package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"fantasy-books/internal/logger"
	"fantasy-books/internal/metrics"
	"fantasy-books/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DeviceIDHeader identifies a browser across requests on general routes.
const DeviceIDHeader = "X-Device-ID"

// Rate limit tiers
const (
	// Admin login (strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// Everything else
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type tier struct {
	name  string
	limit rate.Limit
	burst int
	// byDevice lets a client supplied device id pick the bucket.
	byDevice bool
}

var (
	tierStrict  = tier{"strict", limitStrict, burstStrict, false}
	tierGeneral = tier{"general", limitGeneral, burstGeneral, true}
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client and tier.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	strict   map[string]bool
	now      func() time.Time
}

// NewRateLimiter applies the strict tier to the given paths.
func NewRateLimiter(strictPaths ...string) *RateLimiter {
	strict := make(map[string]bool, len(strictPaths))
	for _, p := range strictPaths {
		strict[p] = true
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		strict:   strict,
		now:      time.Now,
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := l.resolveTier(r)
		key := clientIdentity(r, t) + ":" + t.name

		if !l.limiter(key, t).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limit exceeded",
				zap.String("client", key),
				zap.String("path", r.URL.Path),
			)
			metrics.RateLimited.WithLabelValues(t.name).Inc()
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup drops idle visitors until ctx is done.
func (l *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *RateLimiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

func (l *RateLimiter) limiter(key string, t tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

func (l *RateLimiter) resolveTier(r *http.Request) tier {
	if l.strict[r.URL.Path] {
		return tierStrict
	}
	return tierGeneral
}

// clientIdentity prefers a device id sent by the client when the tier allows
// it and falls back to the peer IP. Strict paths only ever key on the peer,
// so rotating headers does not buy fresh buckets.
func clientIdentity(r *http.Request, t tier) string {
	if deviceID := r.Header.Get(DeviceIDHeader); t.byDevice && deviceID != "" {
		return "device:" + deviceID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
