package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for User
var (
	ErrUserIDEmpty       = errors.New("user ID cannot be empty")
	ErrUserEmailEmpty    = errors.New("user email cannot be empty")
	ErrUserEmailInvalid  = errors.New("user email is invalid")
	ErrPasswordTooShort  = errors.New("password must be at least 12 characters")
	ErrHashedPasswordSet = errors.New("user must have a hashed password")
)

// minPasswordLength is the minimum accepted plaintext password length.
const minPasswordLength = 12

// User represents a registered account. Password is only populated
// transiently during registration and never persisted; HashedPassword is
// what the store keeps.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User pending registration from an email and a
// plaintext password. Returns an error if validation fails.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's fields. A user is valid with either a
// plaintext password (pre-hash) or a hashed one (post-hash).
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	if u.Email == "" {
		return ErrUserEmailEmpty
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrUserEmailInvalid
	}

	if u.Password != "" {
		if len(u.Password) < minPasswordLength {
			return ErrPasswordTooShort
		}
		return nil
	}

	if u.HashedPassword == "" {
		return ErrHashedPasswordSet
	}

	return nil
}
