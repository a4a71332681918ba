package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/skolar/auth-gateway/internal/models"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleScopes is the minimal scope set for identity plus email.
var googleScopes = []string{"openid", "email", "profile"}

// Google implements the Adapter interface for Google OAuth. Google profiles
// always carry an email directly, so no fallback lookup is needed.
type Google struct {
	oauth       *oauth2.Config
	client      *http.Client
	userInfoURL string
}

// NewGoogle creates a Google adapter from the configured client credentials.
func NewGoogle(clientID, clientSecret, redirectURI string) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       googleScopes,
			Endpoint:     google.Endpoint,
		},
		client:      newHTTPClient(),
		userInfoURL: googleUserInfoURL,
	}
}

// Name returns the google provider tag.
func (g *Google) Name() models.Provider {
	return models.ProviderGoogle
}

// AuthCodeURL builds the Google authorization URL.
func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for an access token.
func (g *Google) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.client)
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", authFailed(g.Name(), "code exchange failed", err)
	}
	return tok.AccessToken, nil
}

// FetchProfile retrieves the Google userinfo profile and normalizes it.
func (g *Google) FetchProfile(ctx context.Context, accessToken string) (models.NormalizedProfile, error) {
	resp, err := fetchJSON(ctx, g.client, g.userInfoURL, accessToken)
	if err != nil {
		return models.NormalizedProfile{}, authFailed(g.Name(), "profile request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.NormalizedProfile{}, authFailed(g.Name(),
			fmt.Sprintf("profile endpoint returned status %d", resp.StatusCode), nil)
	}

	var profile models.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return models.NormalizedProfile{}, authFailed(g.Name(), "failed to decode profile", err)
	}

	return models.NormalizedProfile{
		ProviderID: profile.ID,
		Email:      profile.Email,
		Name:       profile.Name,
		Avatar:     profile.Picture,
	}, nil
}
