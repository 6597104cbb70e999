// Package auth provides token issuance and password verification for the
// API's authentication flow.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by the JWT service
var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the validated identity extracted from a token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// JWTService defines the interface for issuing and validating access
// tokens.
// Version: 1.0
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies a token and returns its claims. Returns
	// ErrExpiredToken for expired tokens and ErrInvalidToken for every
	// other validation failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
