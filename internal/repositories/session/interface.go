package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lastman/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/lastman/internal/models"
)

// Repository stores the API sessions of linked chat users
type Repository interface {
	// SaveSession stores a session, replacing any previous one for the user
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession returns the user's session or ErrSessionNotFound
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes the user's session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
