package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds a whole request, including the outbound
// provider calls made during callback handling.
const DefaultRequestTimeout = 30 * time.Second

// Timeout enforces a deadline on request handling via the request context.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
