package mangadex

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errTokenType = errors.New("unexpected token type")

// RefreshClaims are carried by refresh tokens.
type RefreshClaims struct {
	jwt.RegisteredClaims
	Type      string `json:"typ"`
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
}

// SessionClaims are carried by session tokens.
type SessionClaims struct {
	RefreshClaims
	Roles       []string `json:"rol"`
	Permissions []string `json:"prm"`
}

// ExpiredAt reports whether the token is no longer valid at now.
// Tokens without an expiry never expire.
func (c RefreshClaims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// ExpiresIn returns the time left before expiry, zero once expired.
func (c RefreshClaims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}

// ParseSessionClaims decodes a session token without verifying its signature.
// The signing key is private to the API, so this is only fit for inspection.
func ParseSessionClaims(token string) (SessionClaims, error) {
	var claims SessionClaims
	if err := parseUnverified(token, &claims); err != nil {
		return SessionClaims{}, err
	}

	if claims.Type != "session" {
		return SessionClaims{}, fmt.Errorf("%w %q", errTokenType, claims.Type)
	}

	return claims, nil
}

// ParseRefreshClaims decodes a refresh token without verifying its signature.
func ParseRefreshClaims(token string) (RefreshClaims, error) {
	var claims RefreshClaims
	if err := parseUnverified(token, &claims); err != nil {
		return RefreshClaims{}, err
	}

	if claims.Type != "refresh" {
		return RefreshClaims{}, fmt.Errorf("%w %q", errTokenType, claims.Type)
	}

	return claims, nil
}

func parseUnverified(token string, claims jwt.Claims) error {
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	return nil
}
