package tokens

// Package tokens reads claims out of backend-issued JWTs.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("token has no exp claim")

// JWTInspector decodes the payload segment of a JWT without verifying its signature.
// The result is advisory only: the backend remains the authority on token validity.
type JWTInspector struct {
	parser *jwt.Parser
}

// NewJWTInspector creates an inspector.
func NewJWTInspector() *JWTInspector {
	return &JWTInspector{parser: jwt.NewParser()}
}

// ExpiresAt returns the exp claim as an absolute time.
func (i *JWTInspector) ExpiresAt(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, errors.New("token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("decode token payload: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}
