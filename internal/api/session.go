package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KirkDiggler/lastman/internal/models"
)

// TokenClaims are the parts of an API token the client cares about
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// ReadToken reads a JWT's claims without verifying its signature. The API is
// the authority on validity; this is only used to reject sessions already
// known to be dead. Missing claims are left zero.
func ReadToken(token string) (*TokenClaims, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	out := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out, nil
}

// TokenExpiry returns the exp claim of a JWT, zero if absent
func TokenExpiry(token string) (time.Time, error) {
	claims, err := ReadToken(token)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt, nil
}

// SessionFromToken builds a session around a token obtained elsewhere, e.g. a
// CLI flag or an HTTP Authorization header. Opaque tokens are accepted with no
// known expiry.
func SessionFromToken(userID, token string, now time.Time) *models.Session {
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
	}
	if claims, err := ReadToken(token); err == nil {
		session.APIUserID = claims.Subject
		session.ExpiresAt = claims.ExpiresAt
	}
	return session
}
