package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the given identity.
	// IssuedAt and ExpiresAt in claims are ignored and set by the service.
	GenerateToken(ctx context.Context, claims Claims) (string, error)

	// ValidateToken verifies signature and expiry and returns the embedded claims.
	// It returns ErrExpiredToken when the token is well formed but past its
	// expiry, and ErrInvalidToken for every other failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the identity carried by an access token. It lives for one
// request and is never persisted.
type Claims struct {
	// UserID is the usuario_id the token was issued for (the "sub" claim).
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	Gabinete  string    `json:"gabinete"`
	Tipo      string    `json:"tipo"`
	Gestor    bool      `json:"gestor"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
