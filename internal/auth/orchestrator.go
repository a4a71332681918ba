// Package auth sequences the provider adapters, the identity store, and the
// token service into the gateway's login, callback, and verification flows.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/skolar/auth-gateway/internal/models"
	"github.com/skolar/auth-gateway/internal/providers"
	"github.com/skolar/auth-gateway/internal/token"
)

// UserStore is the slice of the identity store the orchestrator needs.
type UserStore interface {
	FindByID(id string) (*models.User, bool)
	UpsertFromProfile(provider models.Provider, profile models.NormalizedProfile) models.User
	ListAll() []models.User
	Count() int
}

// Orchestrator coordinates one login or verification request end to end. It
// holds no per-request state; correlation across the browser redirect round
// trip is delegated to the provider's own state/code mechanism.
type Orchestrator struct {
	providers   providers.Registry
	store       UserStore
	tokens      *token.Service
	frontendURL string
	log         *zap.Logger
}

// New creates an orchestrator over the given collaborators.
func New(reg providers.Registry, store UserStore, tokens *token.Service, frontendURL string, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		providers:   reg,
		store:       store,
		tokens:      tokens,
		frontendURL: frontendURL,
		log:         log,
	}
}

// Login returns the provider's authorization URL for a browser redirect.
func (o *Orchestrator) Login(providerName string) (string, error) {
	adapter, ok := o.providers.Get(providerName)
	if !ok {
		return "", fmt.Errorf("unknown provider %q", providerName)
	}
	return adapter.AuthCodeURL(newState()), nil
}

// Callback runs the exchange, profile fetch, identity reconciliation, and
// token issuance for a provider callback. It is total over success and
// failure: both branches yield a frontend redirect URL, never an error.
func (o *Orchestrator) Callback(ctx context.Context, providerName, code string) string {
	adapter, ok := o.providers.Get(providerName)
	if !ok {
		o.log.Warn("callback_unknown_provider", zap.String("provider", providerName))
		return o.errorRedirect(providerName+"_auth_failed", "unknown provider")
	}

	if code == "" {
		o.log.Warn("callback_missing_code", zap.String("provider", providerName))
		return o.errorRedirect(providerName+"_auth_failed", "missing authorization code")
	}

	accessToken, err := adapter.Exchange(ctx, code)
	if err != nil {
		return o.failureRedirect(adapter.Name(), "code_exchange_failed", err)
	}

	profile, err := adapter.FetchProfile(ctx, accessToken)
	if err != nil {
		return o.failureRedirect(adapter.Name(), "profile_fetch_failed", err)
	}

	user := o.store.UpsertFromProfile(adapter.Name(), profile)
	o.log.Info("user_reconciled",
		zap.String("provider", string(adapter.Name())),
		zap.String("user_id", user.ID),
	)

	sessionToken, err := o.tokens.Issue(user, token.SessionTTL)
	if err != nil {
		return o.failureRedirect(adapter.Name(), "token_issuance_failed", err)
	}

	return o.successRedirect(sessionToken, adapter.Name())
}

// VerificationResult is the body of a /auth/verify response.
type VerificationResult struct {
	Valid bool               `json:"valid"`
	Error string             `json:"error,omitempty"`
	User  *models.PublicUser `json:"user,omitempty"`
}

// Verify extracts the bearer token, verifies it, and re-resolves the user.
// The three missing conditions (no token, invalid token, unknown user) each
// produce a distinct negative result; none is an error.
func (o *Orchestrator) Verify(bearerHeader string) VerificationResult {
	tokenString, ok := o.tokens.ExtractBearer(bearerHeader)
	if !ok {
		return VerificationResult{Valid: false, Error: "No token provided"}
	}

	claims, ok := o.tokens.Verify(tokenString)
	if !ok {
		return VerificationResult{Valid: false, Error: "Invalid token"}
	}

	user, ok := o.store.FindByID(claims.UserID)
	if !ok {
		// Indistinguishable from an invalid token for the caller, but worth
		// telling apart in logs.
		o.log.Warn("verified_token_for_unknown_user", zap.String("user_id", claims.UserID))
		return VerificationResult{Valid: false, Error: "User not found"}
	}

	pub := user.Public()
	return VerificationResult{Valid: true, User: &pub}
}

// ProfileResult is the body of a /auth/me response.
type ProfileResult struct {
	Success bool                `json:"success"`
	Error   string              `json:"error,omitempty"`
	User    *models.ProfileUser `json:"user,omitempty"`
}

// WhoAmI runs the same chain as Verify but returns the richer profile
// projection including the account creation time.
func (o *Orchestrator) WhoAmI(bearerHeader string) ProfileResult {
	tokenString, ok := o.tokens.ExtractBearer(bearerHeader)
	if !ok {
		return ProfileResult{Success: false, Error: "No token provided"}
	}

	claims, ok := o.tokens.Verify(tokenString)
	if !ok {
		return ProfileResult{Success: false, Error: "Invalid token"}
	}

	user, ok := o.store.FindByID(claims.UserID)
	if !ok {
		o.log.Warn("verified_token_for_unknown_user", zap.String("user_id", claims.UserID))
		return ProfileResult{Success: false, Error: "User not found"}
	}

	profile := user.Profile()
	return ProfileResult{Success: true, User: &profile}
}

// LogoutResult is the body of a /auth/logout response.
type LogoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Logout acknowledges the logout. Tokens are not tracked server-side, so
// there is nothing to invalidate; clients discard the credential.
func (o *Orchestrator) Logout() LogoutResult {
	return LogoutResult{Success: true, Message: "Logged out successfully"}
}

// Users returns the debug listing of all reconciled users.
func (o *Orchestrator) Users() (int, []models.User) {
	return o.store.Count(), o.store.ListAll()
}

// failureRedirect converts a terminal adapter failure into the frontend error
// redirect, preserving the adapter's machine-readable code when present.
func (o *Orchestrator) failureRedirect(provider models.Provider, stage string, err error) string {
	code := string(provider) + "_auth_failed"
	message := "Authentication failed"

	var flowErr *providers.FlowError
	if errors.As(err, &flowErr) {
		code = flowErr.Code
		message = flowErr.Message
	}

	o.log.Warn("callback_failed",
		zap.String("provider", string(provider)),
		zap.String("stage", stage),
		zap.String("code", code),
		zap.Error(err),
	)
	return o.errorRedirect(code, message)
}

func (o *Orchestrator) successRedirect(tokenString string, provider models.Provider) string {
	return o.frontendRedirect(url.Values{
		"token":    {tokenString},
		"provider": {string(provider)},
	})
}

func (o *Orchestrator) errorRedirect(code, message string) string {
	return o.frontendRedirect(url.Values{
		"error":   {code},
		"message": {message},
	})
}

func (o *Orchestrator) frontendRedirect(params url.Values) string {
	u, err := url.Parse(o.frontendURL)
	if err != nil {
		// Config validation keeps this from happening; fall back to the raw
		// base rather than dropping the redirect.
		return o.frontendURL
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// newState produces an opaque value for the OAuth state parameter.
func newState() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "state"
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
