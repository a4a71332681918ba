// Package token issues and verifies the gateway's self-contained session
// credentials. Trust is anchored entirely in the signing secret; verification
// never contacts an identity provider or the user store.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/skolar/auth-gateway/internal/models"
)

const (
	// SessionTTL is the validity window for regular session tokens.
	SessionTTL = 7 * 24 * time.Hour
	// ExtendedTTL is the validity window for refresh-style tokens. They are
	// issued on demand, never rotated automatically.
	ExtendedTTL = 30 * 24 * time.Hour
)

// Service signs and verifies HS256 session tokens with a shared secret.
type Service struct {
	secret []byte
	now    func() time.Time
}

// NewService creates a token service around the given signing secret.
func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue builds and signs a token for the user with the given validity window.
// Timestamps have second resolution.
func (s *Service) Issue(user models.User, window time.Duration) (string, error) {
	now := s.now().Truncate(time.Second)

	tok, err := jwt.NewBuilder().
		Claim("userId", user.ID).
		Claim("email", user.Email).
		Claim("provider", string(user.Provider)).
		IssuedAt(now).
		Expiration(now.Add(window)).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// Verify checks the token's signature and expiry and decodes its claims. The
// result is valid only if the signature holds, the token is unexpired, and
// userId, email, and provider are all present. Malformed or expired input is
// a normal negative result, never an error.
func (s *Service) Verify(tokenString string) (*models.TokenClaims, bool) {
	parsed, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	)
	if err != nil {
		return nil, false
	}

	userID, ok := stringClaim(parsed, "userId")
	if !ok {
		return nil, false
	}
	email, ok := stringClaim(parsed, "email")
	if !ok {
		return nil, false
	}
	provider, ok := stringClaim(parsed, "provider")
	if !ok {
		return nil, false
	}

	return &models.TokenClaims{
		UserID:   userID,
		Email:    email,
		Provider: models.Provider(provider),
		Iat:      parsed.IssuedAt().Unix(),
		Exp:      parsed.Expiration().Unix(),
	}, true
}

// ExtractBearer pulls the token out of an Authorization header value. The
// header must be exactly two space-separated parts with the first literally
// "Bearer"; anything else yields absence.
func (s *Service) ExtractBearer(headerValue string) (string, bool) {
	if headerValue == "" {
		return "", false
	}
	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// DecodeUnverified base64-decodes the payload segment of a compact token and
// parses it as JSON, without checking the signature. Diagnostics only; never
// use the result for trust decisions.
func DecodeUnverified(tokenString string) (map[string]any, bool) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func stringClaim(tok jwt.Token, name string) (string, bool) {
	v, ok := tok.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
