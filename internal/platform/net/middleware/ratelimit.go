package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"
	pnet "minishop/internal/platform/net"
	"minishop/internal/platform/ratelimit"
)

// KeyFunc picks the bucket a request counts against
type KeyFunc func(r *http.Request) string

// ClientIP keys by remote address without the port. Behind a proxy pair with TrustedRealIP
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects requests over limit per window with a 429 envelope
// limit <= 0 disables the middleware
func RateLimit(l ratelimit.Limiter, limit int, key KeyFunc, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	if key == nil {
		key = ClientIP
	}
	return func(next http.Handler) http.Handler {
		if l == nil || limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := l.Allow(r.Context(), key(r), limit)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				retry := max(int(time.Until(d.ResetAt).Seconds()+0.5), 1)
				h.Set("Retry-After", strconv.Itoa(retry))
				logger.C(r.Context()).Info().
					Str("path", r.URL.Path).
					Int("count", d.Count).
					Int("limit", d.Limit).
					Msg("rate limited")
				status, body := pnet.Error(perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit exceeded, retry in %ds", retry), pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
