package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match its
// stored hash.
var ErrPasswordMismatch = errors.New("password does not match")

// PasswordVerifier abstracts password hash comparison so handlers and
// tests never touch bcrypt directly.
// Version: 1.0
type PasswordVerifier interface {
	// Compare checks a plaintext password against a stored hash.
	// Returns ErrPasswordMismatch when they do not match.
	Compare(hashedPassword, password string) error
}

// bcryptVerifier implements PasswordVerifier with bcrypt.
type bcryptVerifier struct{}

// NewBcryptVerifier creates the standard bcrypt-backed verifier.
func NewBcryptVerifier() PasswordVerifier {
	return &bcryptVerifier{}
}

// Compare implements PasswordVerifier.Compare.
func (v *bcryptVerifier) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
