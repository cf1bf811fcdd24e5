package api

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired inspects a JWT access token without verifying its signature
// and reports whether its exp claim is in the past. ok is false when the
// token is not a parseable JWT or carries no expiry, in which case nothing
// can be said about it.
func tokenExpired(token string, now time.Time) (expired, ok bool) {
	raw := strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, false
	}
	return exp.Before(now), true
}
