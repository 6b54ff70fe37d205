package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "minishop/internal/platform/net/http"
	"minishop/internal/platform/net/middleware"
	"minishop/internal/platform/ratelimit"
)

// StackOptions configures CommonStack
type StackOptions struct {
	// Origins are the web origins allowed by CORS, none allows any
	Origins []string

	// TrustedProxies are the peers whose X-Forwarded-For is believed, IPs or CIDRs
	TrustedProxies []string
}

// CommonStack returns a baseline per module middleware slice
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID,
		middleware.TrustedRealIP(o.TrustedProxies),
		middleware.RequestScope,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin, the Mini App page is served from another host
		middleware.CORS(o.Origins, "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes,
		middleware.Timeout(30 * time.Second),
	}
}

// RateLimit wires the per client limiter to the platform JSON writer
func RateLimit(l ratelimit.Limiter, limit int) func(http.Handler) http.Handler {
	return middleware.RateLimit(l, limit, middleware.ClientIP, phttp.JSON)
}
