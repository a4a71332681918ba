package models

import (
	"time"
)

// Provider identifies an external identity provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// IsValidProvider reports whether p names a supported identity provider.
func IsValidProvider(p string) bool {
	switch Provider(p) {
	case ProviderGoogle, ProviderGitHub:
		return true
	default:
		return false
	}
}

// User is a reconciled local identity. At most one User exists per
// (Provider, ProviderID) pair; that pair is the sole dedup key.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Avatar     string    `json:"avatar,omitempty"`
	Provider   Provider  `json:"provider"`
	ProviderID string    `json:"providerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserUpdate carries a partial-field merge for the store's Update operation.
// Nil fields are left untouched.
type UserUpdate struct {
	Email  *string
	Name   *string
	Avatar *string
}

// PublicUser is the projection returned by token verification.
type PublicUser struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Avatar   string   `json:"avatar,omitempty"`
	Provider Provider `json:"provider"`
}

// ProfileUser extends PublicUser with the account creation time. Returned by
// the /auth/me endpoint.
type ProfileUser struct {
	PublicUser
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the verification projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Provider: u.Provider,
	}
}

// Profile returns the richer /auth/me projection of u.
func (u *User) Profile() ProfileUser {
	return ProfileUser{
		PublicUser: u.Public(),
		CreatedAt:  u.CreatedAt,
	}
}
