package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a bearer token without verifying its
// signature. The client never holds the signing key; the result is for
// display only. ok is false when the token carries no exp claim.
func TokenExpiry(token string) (exp time.Time, ok bool, err error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false, fmt.Errorf("session.TokenExpiry: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}
