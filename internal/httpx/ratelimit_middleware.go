package httpx

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type rateLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitMiddleware struct {
	limiters map[string]*rateLimiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	cleanup  time.Duration
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiters: make(map[string]*rateLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		cleanup:  5 * time.Minute,
	}
}

// Run evicts idle limiters until ctx is done.
func (rl *RateLimitMiddleware) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

func (rl *RateLimitMiddleware) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, limiter := range rl.limiters {
		if now.Sub(limiter.lastSeen) > rl.cleanup {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimitMiddleware) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = &rateLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = limiter
	}
	limiter.lastSeen = time.Now()

	return limiter.limiter
}

func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (rl *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(clientKey(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			JSONMessage(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}
