package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/net"
	"minishop/internal/platform/net/middleware"
	"minishop/internal/platform/ratelimit"
)

type fixedLimiter struct {
	d    ratelimit.Decision
	keys []string
}

func (f *fixedLimiter) Allow(_ context.Context, key string, limit int) ratelimit.Decision {
	f.keys = append(f.keys, key)
	return f.d
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestRateLimit_AllowsAndSetsHeaders(t *testing.T) {
	l := &fixedLimiter{d: ratelimit.Decision{Allowed: true, Count: 1, Limit: 5, Remaining: 4, ResetAt: time.Unix(1700000000, 0)}}
	mw := middleware.RateLimit(l, 5, nil, writeJSON)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/miniapp/auth", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rr := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Fatalf("remaining header = %q", got)
	}
	if got := rr.Header().Get("X-RateLimit-Reset"); got != "1700000000" {
		t.Fatalf("reset header = %q", got)
	}
	if len(l.keys) != 1 || l.keys[0] != "203.0.113.7" {
		t.Fatalf("keys = %v", l.keys)
	}
}

func TestRateLimit_RejectsWith429Envelope(t *testing.T) {
	l := &fixedLimiter{d: ratelimit.Decision{Allowed: false, Count: 6, Limit: 5, ResetAt: time.Now().Add(10 * time.Second)}}
	mw := middleware.RateLimit(l, 5, func(*http.Request) string { return "k" }, writeJSON)

	var called bool
	rr := httptest.NewRecorder()
	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	if called {
		t.Fatal("next must not run when limited")
	}
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
	var body net.Wire
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != perr.ErrorCodeTooManyRequests || body.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("body = %+v", body)
	}
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	for _, mw := range []func(http.Handler) http.Handler{
		middleware.RateLimit(nil, 5, nil, writeJSON),
		middleware.RateLimit(&fixedLimiter{}, 0, nil, writeJSON),
	} {
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusTeapot {
			t.Fatalf("status = %d", rr.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "[2001:db8::1]:443"
	if got := middleware.ClientIP(r); got != "2001:db8::1" {
		t.Fatalf("ClientIP = %q", got)
	}
	r.RemoteAddr = "unix"
	if got := middleware.ClientIP(r); got != "unix" {
		t.Fatalf("ClientIP = %q", got)
	}
}
