package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/skolar/auth-gateway/internal/auth"
	"github.com/skolar/auth-gateway/internal/models"
	"github.com/skolar/auth-gateway/internal/providers"
	"github.com/skolar/auth-gateway/internal/store"
	"github.com/skolar/auth-gateway/internal/token"
)

const frontendURL = "http://localhost:5173"

type stubAdapter struct {
	name    models.Provider
	profile models.NormalizedProfile
	err     error
}

func (s *stubAdapter) Name() models.Provider           { return s.name }
func (s *stubAdapter) AuthCodeURL(state string) string { return "https://provider.example/authorize" }

func (s *stubAdapter) Exchange(ctx context.Context, code string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "access-token", nil
}

func (s *stubAdapter) FetchProfile(ctx context.Context, accessToken string) (models.NormalizedProfile, error) {
	return s.profile, s.err
}

func newTestRouter(reg providers.Registry) (*mux.Router, *token.Service, *store.Memory) {
	mem := store.NewMemory()
	tokens := token.NewService("test-secret")
	orch := auth.New(reg, mem, tokens, frontendURL, zap.NewNop())

	r := mux.NewRouter()
	NewAuthHandler(orch, zap.NewNop()).RegisterRoutes(r)
	r.HandleFunc("/", Root).Methods("GET")
	r.HandleFunc("/healthz", Health).Methods("GET")
	return r, tokens, mem
}

func TestLoginRedirectsToProvider(t *testing.T) {
	t.Parallel()

	google := providers.NewGoogle("g-client", "g-secret", "http://localhost:8080/auth/google/callback")
	router, _, _ := newTestRouter(providers.Registry{models.ProviderGoogle: google})

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}

	location := w.Header().Get("Location")
	for _, want := range []string{"client_id=g-client", "openid", "email", "profile"} {
		if !strings.Contains(location, want) {
			t.Errorf("expected %q in redirect %q", want, location)
		}
	}
}

func TestLoginUnknownProvider(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(providers.Registry{})

	req := httptest.NewRequest(http.MethodGet, "/auth/gitlab", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCallbackThenVerifyEndToEnd(t *testing.T) {
	t.Parallel()

	adapter := &stubAdapter{
		name:    models.ProviderGoogle,
		profile: models.NormalizedProfile{ProviderID: "g1", Email: "a@b.com", Name: "A", Avatar: "p"},
	}
	router, _, _ := newTestRouter(providers.Registry{models.ProviderGoogle: adapter})

	// Callback redirects to the frontend with token and provider attached.
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=validcode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	location, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("redirect is not a URL: %v", err)
	}
	if got := location.Scheme + "://" + location.Host; got != frontendURL {
		t.Fatalf("expected redirect to %s, got %s", frontendURL, got)
	}
	sessionToken := location.Query().Get("token")
	if sessionToken == "" {
		t.Fatal("expected token query parameter")
	}
	if location.Query().Get("provider") != "google" {
		t.Fatalf("expected provider=google, got %q", location.Query().Get("provider"))
	}

	// The issued token passes /auth/verify.
	req = httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var verify struct {
		Valid bool `json:"valid"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &verify); err != nil {
		t.Fatalf("failed to decode verify body: %v", err)
	}
	if !verify.Valid {
		t.Fatal("expected valid verification")
	}
	if verify.User.Email != "a@b.com" {
		t.Fatalf("expected user email a@b.com, got %q", verify.User.Email)
	}
}

func TestCallbackFailureRedirectsWithError(t *testing.T) {
	t.Parallel()

	adapter := &stubAdapter{
		name: models.ProviderGitHub,
		err:  &providers.FlowError{Code: "github_auth_failed", Message: "code exchange failed"},
	}
	router, _, _ := newTestRouter(providers.Registry{models.ProviderGitHub: adapter})

	req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=badcode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	location, _ := url.Parse(w.Header().Get("Location"))
	if location.Query().Get("error") != "github_auth_failed" {
		t.Fatalf("expected error=github_auth_failed, got %q", location.Query().Get("error"))
	}
	if location.Query().Get("message") == "" {
		t.Fatal("expected human-readable message parameter")
	}
}

func TestVerifyNegativeResultsAreHTTP200(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(providers.Registry{})

	tests := []struct {
		name      string
		header    string
		wantError string
	}{
		{name: "no header", header: "", wantError: "No token provided"},
		{name: "wrong scheme", header: "Token abc", wantError: "No token provided"},
		{name: "garbage token", header: "Bearer garbage", wantError: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 for negative result, got %d", w.Code)
			}
			var body struct {
				Valid bool   `json:"valid"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Valid {
				t.Fatal("expected valid=false")
			}
			if body.Error != tt.wantError {
				t.Fatalf("expected error %q, got %q", tt.wantError, body.Error)
			}
		})
	}
}

func TestMeIncludesCreatedAt(t *testing.T) {
	t.Parallel()

	adapter := &stubAdapter{
		name:    models.ProviderGitHub,
		profile: models.NormalizedProfile{ProviderID: "gh1", Email: "c@d.com", Name: "C"},
	}
	router, tokens, mem := newTestRouter(providers.Registry{models.ProviderGitHub: adapter})

	user := mem.UpsertFromProfile(models.ProviderGitHub, adapter.profile)
	sessionToken, err := tokens.Issue(user, token.SessionTTL)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body struct {
		Success bool `json:"success"`
		User    struct {
			Email     string `json:"email"`
			CreatedAt string `json:"createdAt"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success")
	}
	if body.User.CreatedAt == "" {
		t.Fatal("expected createdAt in /auth/me response")
	}
}

func TestLogoutAndUsers(t *testing.T) {
	t.Parallel()

	adapter := &stubAdapter{
		name:    models.ProviderGoogle,
		profile: models.NormalizedProfile{ProviderID: "g1", Email: "a@b.com"},
	}
	router, _, mem := newTestRouter(providers.Registry{models.ProviderGoogle: adapter})
	mem.UpsertFromProfile(models.ProviderGoogle, adapter.profile)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var logout struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &logout); err != nil {
		t.Fatalf("failed to decode logout body: %v", err)
	}
	if !logout.Success {
		t.Fatal("expected unconditional logout success")
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/users", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var users struct {
		Count int           `json:"count"`
		Users []models.User `json:"users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("failed to decode users body: %v", err)
	}
	if users.Count != 1 || len(users.Users) != 1 {
		t.Fatalf("expected one listed user, got count=%d len=%d", users.Count, len(users.Users))
	}
}

func TestRootAndHealth(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(providers.Registry{})

	for _, path := range []string{"/", "/healthz", "/auth"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200 for %s, got %d", path, w.Code)
		}
	}
}
