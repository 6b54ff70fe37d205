package middleware

import (
	"net/http"

	"minishop/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestScope tags the request logger with the id set by RequestID
// and echoes the id back to the client
func RequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := chimw.GetReqID(r.Context())
		if rid == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(chimw.RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), rid)))
	})
}
