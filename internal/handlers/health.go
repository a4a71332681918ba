package handlers

import (
	"net/http"
	"time"
)

var processStart = time.Now()

// Root describes the gateway for anyone poking at the base URL.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Auth gateway",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":   "/auth",
			"health": "/healthz",
		},
	})
}

// Health reports process liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(processStart).Seconds()),
	})
}

// Version exposes minimal version info.
func Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
