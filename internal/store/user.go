package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/notewell/notewell-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Version: 1.0
type UserStore interface {
	// Create saves a new user, hashing the transient plaintext password
	// before storage. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
