// Package users provides registration and login on top of a credential store.
package users

import (
	"context"
	"errors"
)

// User-related errors.
var (
	// ErrUserNotFound indicates no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates the email is already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	// The same error covers unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store persists user records.
type Store interface {
	// Create persists user and assigns its ID.
	// Returns ErrUserExists if the email is already taken.
	Create(ctx context.Context, user *User) error

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID retrieves a user by its ID in hex form.
	// Returns ErrUserNotFound for unknown or malformed IDs.
	GetByID(ctx context.Context, id string) (*User, error)
}
