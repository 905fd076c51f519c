package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenClaims holds the registered claims the client can read from an issued token.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ReadClaims decodes a JWT without verifying its signature; the client never
// holds the signing key. ok is false when the token is not a JWT.
func ReadClaims(token string) (TokenClaims, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return TokenClaims{}, false
	}

	var out TokenClaims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}
