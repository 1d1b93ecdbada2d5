// Package token issues and verifies signed session tokens.
//
// Tokens are stateless HS256 JWTs carrying the user identity; nothing is
// persisted server-side, so a token remains valid until its expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session token lifetime used when none is configured.
const DefaultTTL = 1 * time.Hour

// Claims represents the JWT claims structure.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Config holds configuration for the token service.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret string

	// TTL is how long issued tokens are valid. Defaults to DefaultTTL.
	TTL time.Duration

	// ClockSkew allows for clock differences between servers.
	ClockSkew time.Duration
}

// Service handles session token generation and validation.
type Service struct {
	secret []byte
	ttl    time.Duration
	skew   time.Duration
}

// New creates a new token service.
// Returns ErrMissingSecret if the signing key is absent.
func New(cfg *Config) (*Service, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		skew:   cfg.ClockSkew,
	}, nil
}

// Issue creates a signed token embedding userID, valid for the configured
// TTL from the time of issue.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify validates the signature and expiry of tokenString and returns the
// embedded user ID.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Reject tokens signed with anything but HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalidSig
		}
		return s.secret, nil
	}, jwt.WithLeeway(s.skew))
	if err != nil {
		return "", mapJWTError(err)
	}

	if !tok.Valid {
		return "", ErrTokenMalformed
	}

	if claims.UserID == "" {
		return "", ErrTokenMalformed
	}

	return claims.UserID, nil
}

// mapJWTError maps JWT library errors to our error types.
func mapJWTError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	if errors.Is(err, jwt.ErrTokenNotValidYet) {
		return ErrTokenNotYetValid
	}
	if errors.Is(err, jwt.ErrTokenMalformed) {
		return ErrTokenMalformed
	}
	if errors.Is(err, jwt.ErrSignatureInvalid) {
		return ErrTokenInvalidSig
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return ErrTokenInvalidSig
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return ErrTokenInvalidSig
	}

	return ErrTokenMalformed
}
