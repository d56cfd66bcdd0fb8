package models

import (
	"time"
)

// Session is an authenticated link between a chat user and the LMS API
type Session struct {
	// UserID is the chat user this session belongs to
	UserID string `json:"user_id"`

	// APIUserID is the user's identifier on the LMS API
	APIUserID string `json:"api_user_id,omitempty"`

	// DisplayName is the user's display name on the LMS API
	DisplayName string `json:"display_name,omitempty"`

	// Token is the bearer token presented to the API
	Token string `json:"token"`

	// CreatedAt is when the session was created at login
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the token expires, zero if unknown
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired returns true if the token has a known expiry at or before now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
