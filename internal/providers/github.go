package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/skolar/auth-gateway/internal/models"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"

	// CodeNoVerifiedEmail marks a GitHub login whose account exposes no
	// primary verified email. Distinct from transport failures so the
	// frontend can tell the user to fix their account settings.
	CodeNoVerifiedEmail = "github_no_verified_email"
)

var githubScopes = []string{"read:user", "user:email"}

// GitHub implements the Adapter interface for GitHub OAuth. GitHub profiles
// may hide the email, in which case the account email listing is consulted
// for a primary verified address.
type GitHub struct {
	oauth     *oauth2.Config
	client    *http.Client
	userURL   string
	emailsURL string
}

// NewGitHub creates a GitHub adapter from the configured client credentials.
func NewGitHub(clientID, clientSecret, redirectURI string) *GitHub {
	return &GitHub{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       githubScopes,
			Endpoint:     github.Endpoint,
		},
		client:    newHTTPClient(),
		userURL:   githubUserURL,
		emailsURL: githubEmailsURL,
	}
}

// Name returns the github provider tag.
func (g *GitHub) Name() models.Provider {
	return models.ProviderGitHub
}

// AuthCodeURL builds the GitHub authorization URL.
func (g *GitHub) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for an access token.
func (g *GitHub) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.client)
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", authFailed(g.Name(), "code exchange failed", err)
	}
	return tok.AccessToken, nil
}

// FetchProfile retrieves the GitHub user profile and normalizes it. The
// numeric account id becomes the providerId; a missing display name falls
// back to the login handle; a missing email falls back to the account's
// primary verified address.
func (g *GitHub) FetchProfile(ctx context.Context, accessToken string) (models.NormalizedProfile, error) {
	resp, err := fetchJSON(ctx, g.client, g.userURL, accessToken)
	if err != nil {
		return models.NormalizedProfile{}, authFailed(g.Name(), "profile request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.NormalizedProfile{}, authFailed(g.Name(),
			fmt.Sprintf("profile endpoint returned status %d", resp.StatusCode), nil)
	}

	var profile models.GitHubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return models.NormalizedProfile{}, authFailed(g.Name(), "failed to decode profile", err)
	}

	email := profile.Email
	if email == "" {
		email = g.lookupPrimaryEmail(ctx, accessToken)
	}
	if email == "" {
		return models.NormalizedProfile{}, &FlowError{
			Code:    CodeNoVerifiedEmail,
			Message: "no verified primary email on this GitHub account",
		}
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	return models.NormalizedProfile{
		ProviderID: strconv.FormatInt(profile.ID, 10),
		Email:      email,
		Name:       name,
		Avatar:     profile.AvatarURL,
	}, nil
}

// lookupPrimaryEmail queries the account email listing and returns the entry
// that is both primary and verified, or "" when none qualifies or the
// listing cannot be fetched.
func (g *GitHub) lookupPrimaryEmail(ctx context.Context, accessToken string) string {
	resp, err := fetchJSON(ctx, g.client, g.emailsURL, accessToken)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var emails []models.GitHubEmail
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return ""
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}
