package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry reads the exp claim of a JWT without verifying its signature; verification
// is the backend's job. ok is false when the token does not parse.
func tokenExpiry(token string) (exp time.Time, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, true
	}
	return claims.ExpiresAt.Time, true
}

// tokenUsable reports whether a stored token is worth presenting to the backend.
// Opaque (non-JWT) tokens are left for the backend to judge.
func tokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	if strings.Count(token, ".") != 2 {
		return true
	}
	exp, ok := tokenExpiry(token)
	if !ok {
		return false
	}
	return exp.IsZero() || now.Before(exp)
}
