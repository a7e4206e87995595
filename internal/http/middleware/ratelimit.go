package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	mu    sync.Mutex
	byIP  map[string]*bucket
	rate  float64
	burst float64
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter allows rate requests per second with the given burst per IP.
// A background goroutine evicts buckets idle for ten minutes.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		byIP:  make(map[string]*bucket),
		rate:  rate,
		burst: float64(burst),
	}
	go rl.evictLoop()
	return rl
}

// Allow reports whether a request from ip fits in its bucket, consuming one
// token when it does.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b := rl.byIP[ip]
	if b == nil {
		rl.byIP[ip] = &bucket{tokens: rl.burst - 1, seen: now}
		return true
	}

	b.tokens = min(rl.burst, b.tokens+now.Sub(b.seen).Seconds()*rl.rate)
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		rl.mu.Lock()
		for ip, b := range rl.byIP {
			if b.seen.Before(cutoff) {
				delete(rl.byIP, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit rejects requests over the configured rate with 429.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
