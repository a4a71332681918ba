// Package providers drives the provider-specific legs of the OAuth login
// flow: building the authorization redirect, exchanging the callback code for
// an access token, and fetching + normalizing the provider profile.
package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/skolar/auth-gateway/internal/models"
)

// defaultHTTPTimeout bounds every outbound provider call. The provider APIs
// impose no timeout of their own, so an unresponsive provider would otherwise
// hold the callback request open indefinitely.
const defaultHTTPTimeout = 10 * time.Second

// Adapter is the capability interface implemented once per identity provider.
// A failed Exchange or FetchProfile is terminal for the login attempt; no
// step is retried.
type Adapter interface {
	// Name returns the provider tag used in user records and error codes.
	Name() models.Provider
	// AuthCodeURL builds the provider's authorization URL. No network call.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string) (string, error)
	// FetchProfile retrieves the profile behind the access token and applies
	// provider-specific normalization.
	FetchProfile(ctx context.Context, accessToken string) (models.NormalizedProfile, error)
}

// Registry maps provider tags to their adapters.
type Registry map[models.Provider]Adapter

// Get resolves a provider tag from a request path segment.
func (r Registry) Get(name string) (Adapter, bool) {
	a, ok := r[models.Provider(name)]
	return a, ok
}

// FlowError is a terminal login-attempt failure carrying a machine-readable
// code for the frontend error redirect.
type FlowError struct {
	Code    string
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// authFailed wraps a transport or exchange failure under the provider's
// generic auth-failure code.
func authFailed(provider models.Provider, message string, err error) *FlowError {
	return &FlowError{
		Code:    string(provider) + "_auth_failed",
		Message: message,
		Err:     err,
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// fetchJSON issues an authorized GET against a provider API endpoint.
func fetchJSON(ctx context.Context, client *http.Client, url, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	return client.Do(req)
}
