// Package middleware holds the HTTP middleware the API stacks: chi's, go-chi/cors and our own
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// chi middleware used as is, re-exported so modules never import chi
var (
	RequestID    = chimw.RequestID
	NoCache      = chimw.NoCache
	StripSlashes = chimw.StripSlashes
)

// Heartbeat answers GET path with 200 before any routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Compress encodes responses of the default content types at level
func Compress(level int) func(http.Handler) http.Handler { return chimw.Compress(level) }

// corsHeaders are what the Mini App sends, Authorization carries "tma <initData>"
var corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}

// CORS lets the Mini App page, served from its own origin, call the API
// no origins allows any; exposed lists response headers scripts may read
func CORS(origins []string, exposed ...string) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: corsHeaders,
		ExposedHeaders: exposed,
		MaxAge:         300,
	})
}
