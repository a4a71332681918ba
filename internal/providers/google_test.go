package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGoogleFetchProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer access-token" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"id":"g1","email":"a@b.com","verified_email":true,"name":"A","picture":"https://a/p.png"}`))
	}))
	defer srv.Close()

	g := NewGoogle("g-client", "g-secret", "http://localhost:8080/auth/google/callback")
	g.client = srv.Client()
	g.userInfoURL = srv.URL

	profile, err := g.FetchProfile(context.Background(), "access-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ProviderID != "g1" {
		t.Errorf("expected providerId g1, got %q", profile.ProviderID)
	}
	if profile.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %q", profile.Email)
	}
	if profile.Name != "A" {
		t.Errorf("expected name A, got %q", profile.Name)
	}
	if profile.Avatar != "https://a/p.png" {
		t.Errorf("expected picture mapped to avatar, got %q", profile.Avatar)
	}
}

func TestGoogleFetchProfileFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGoogle("g-client", "g-secret", "http://localhost:8080/auth/google/callback")
	g.client = srv.Client()
	g.userInfoURL = srv.URL

	_, err := g.FetchProfile(context.Background(), "access-token")
	if err == nil {
		t.Fatal("expected failure for non-200 status")
	}

	var flowErr *FlowError
	if !errors.As(err, &flowErr) {
		t.Fatalf("expected FlowError, got %T", err)
	}
	if flowErr.Code != "google_auth_failed" {
		t.Fatalf("expected google_auth_failed, got %q", flowErr.Code)
	}
}

func TestGoogleAuthCodeURL(t *testing.T) {
	t.Parallel()

	g := NewGoogle("g-client", "g-secret", "http://localhost:8080/auth/google/callback")
	u := g.AuthCodeURL("state-2")

	for _, want := range []string{"client_id=g-client", "openid", "email", "profile", "state=state-2"} {
		if !strings.Contains(u, want) {
			t.Errorf("expected %q in authorization URL %q", want, u)
		}
	}
}
