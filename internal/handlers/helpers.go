package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v as the response body. Verification-style endpoints
// encode their outcome in the body rather than the status code, so most
// callers pass http.StatusOK even for negative results.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeError sends a body-flagged error with the given status.
func writeError(w http.ResponseWriter, status int, errorType, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   errorType,
		"message": message,
	})
}
