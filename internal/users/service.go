package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskvault/taskvault/internal/password"
	"github.com/taskvault/taskvault/internal/validation"
)

// Service handles registration and login.
type Service struct {
	store  Store
	hasher password.Hasher
}

// NewService creates a new user service.
func NewService(store Store, hasher password.Hasher) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
	}
}

// Register creates a new user with the given credentials. The password is
// hashed before it reaches the store; the plaintext is never persisted.
func (s *Service) Register(ctx context.Context, username, email, plaintext string) (*User, error) {
	var v validation.Collector
	v.Require("username", username)
	v.Require("email", email)
	v.Require("password", plaintext)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the email/password pair and returns the matching user.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials so
// the response shape does not reveal which one failed.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
