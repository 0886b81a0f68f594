package web

import (
	"net/http"
	"sync"
	"time"
)

// rateLimiter tracks a fixed-window token budget per client address.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	remaining int
	resetAt   time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go rl.evictStale()
	return rl
}

// evictStale drops buckets that have been idle for two full windows.
func (rl *rateLimiter) evictStale() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for addr, b := range rl.clients {
			if time.Since(b.resetAt) > rl.window*2 {
				delete(rl.clients, addr)
			}
		}
		rl.mu.Unlock()
	}
}

// allow consumes one token for addr, opening a fresh window when the
// current one has elapsed.
func (rl *rateLimiter) allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[addr]
	if !ok || time.Since(b.resetAt) > rl.window {
		rl.clients[addr] = &bucket{remaining: rl.limit - 1, resetAt: time.Now()}
		return true
	}
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// middleware rejects over-budget clients with 429 and the standard
// failure envelope.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.RemoteAddr
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			addr = realIP
		}

		if !rl.allow(addr) {
			w.Header().Set("Retry-After", "60")
			respondFailure(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
