package auth

import (
	"context"
	"time"
)

// TokenTypeAccess is the only token type the API accepts.
const TokenTypeAccess = "access"

// JWTService defines operations for issuing and checking actor tokens.
type JWTService interface {
	// GenerateToken creates a signed access token whose subject is actor.
	GenerateToken(ctx context.Context, actor string) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or
	// ErrInvalidToken when the token cannot be accepted.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of an access token.
type Claims struct {
	// Subject is the actor recorded as changed_by on mutations.
	Subject   string    `json:"sub,omitempty"`
	TokenType string    `json:"type,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
