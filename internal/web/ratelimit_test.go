package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := &rateLimiter{clients: make(map[string]*bucket), limit: 2, window: time.Hour}

	for i := 0; i < 2; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d denied within budget", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over budget allowed")
	}

	// Budgets are per address.
	if !rl.allow("5.6.7.8") {
		t.Error("fresh address denied")
	}

	// An elapsed window opens a new budget.
	rl.clients["1.2.3.4"].resetAt = time.Now().Add(-2 * time.Hour)
	if !rl.allow("1.2.3.4") {
		t.Error("request after window reset denied")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := &rateLimiter{clients: make(map[string]*bucket), limit: 1, window: time.Hour}
	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/datasets/csv", nil)
		req.Header.Set("X-Real-IP", "9.9.9.9")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	m := decodeEnvelope(t, rec)
	if m["success"] != false || m["error"] != "rate limit exceeded" {
		t.Errorf("envelope = %v", m)
	}
}
