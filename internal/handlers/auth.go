package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/skolar/auth-gateway/internal/auth"
	"github.com/skolar/auth-gateway/internal/models"
)

// AuthHandler exposes the authentication flows over HTTP.
type AuthHandler struct {
	orch *auth.Orchestrator
	log  *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(orch *auth.Orchestrator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{orch: orch, log: log}
}

// RegisterRoutes registers the auth routes on the given router. The literal
// routes must be registered before the {provider} patterns so that
// /auth/verify does not resolve as a provider login.
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth", h.Index).Methods("GET")
	r.HandleFunc("/auth/verify", h.Verify).Methods("GET")
	r.HandleFunc("/auth/me", h.Me).Methods("GET")
	r.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	r.HandleFunc("/auth/users", h.Users).Methods("GET")
	r.HandleFunc("/auth/{provider}", h.Login).Methods("GET")
	r.HandleFunc("/auth/{provider}/callback", h.Callback).Methods("GET")
}

// Index lists the available providers and their endpoints.
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "OAuth authentication API",
		"providers": []string{string(models.ProviderGoogle), string(models.ProviderGitHub)},
		"endpoints": map[string]any{
			"google": map[string]string{
				"login":    "/auth/google",
				"callback": "/auth/google/callback",
			},
			"github": map[string]string{
				"login":    "/auth/github",
				"callback": "/auth/github/callback",
			},
		},
	})
}

// Login redirects the browser to the provider's authorization endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]

	redirect, err := h.orch.Login(provider)
	if err != nil {
		h.log.Warn("login_unknown_provider", zap.String("provider", provider))
		writeError(w, http.StatusNotFound, "Unknown provider", "Supported providers: google, github")
		return
	}

	http.Redirect(w, r, redirect, http.StatusFound)
}

// Callback finishes the provider round trip. Success or failure, the browser
// always ends up redirected to the frontend.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]
	code := r.URL.Query().Get("code")

	redirect := h.orch.Callback(r.Context(), provider, code)
	http.Redirect(w, r, redirect, http.StatusFound)
}

// Verify reports whether the bearer token is valid. Always HTTP 200; the
// outcome lives in the body.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Verify(r.Header.Get("Authorization")))
}

// Me returns the authenticated user's profile, including createdAt.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.WhoAmI(r.Header.Get("Authorization")))
}

// Logout acknowledges the logout without any server-side invalidation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Logout())
}

// Users returns the administrative listing of reconciled users.
func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	count, users := h.orch.Users()
	writeJSON(w, http.StatusOK, map[string]any{
		"count": count,
		"users": users,
	})
}
