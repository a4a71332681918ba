package models

// NormalizedProfile is the provider-agnostic shape handed from a provider
// adapter to the orchestrator. It is transient and never persisted as-is.
type NormalizedProfile struct {
	ProviderID string
	Email      string
	Name       string
	Avatar     string
}

// GoogleProfile mirrors the Google userinfo v2 response.
type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// GitHubProfile mirrors the GitHub /user response. Email may be empty when the
// account hides it; the adapter then falls back to the /user/emails listing.
type GitHubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Company   string `json:"company"`
	Location  string `json:"location"`
}

// GitHubEmail is one entry of the GitHub /user/emails response.
type GitHubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}
