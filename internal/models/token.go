package models

// TokenClaims represents the claims carried by a session credential.
type TokenClaims struct {
	UserID   string   `json:"userId"`
	Email    string   `json:"email"`
	Provider Provider `json:"provider"`
	Iat      int64    `json:"iat"` // Issued at (unix seconds)
	Exp      int64    `json:"exp"` // Expiration time (unix seconds)
}
