package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS builds the CORS middleware for the gateway. Allowed origins come from
// the configured frontend URL (comma-separated for multiple frontends);
// preflight requests are answered with 204 by rs/cors.
func CORS(frontendURL string) func(http.Handler) http.Handler {
	origins := splitOrigins(frontendURL)
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
