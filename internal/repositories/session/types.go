package session

import (
	"time"

	"github.com/KirkDiggler/lastman/internal/models"
)

type SaveSessionInput struct {
	Session *models.Session
	// TTL of zero keeps the session until it is deleted
	TTL time.Duration
}

type GetSessionInput struct {
	UserID string
}

type DeleteSessionInput struct {
	UserID string
}
