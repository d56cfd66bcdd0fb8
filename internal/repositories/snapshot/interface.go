package snapshot

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lastman/internal/repositories/snapshot Repository

import (
	"context"

	"github.com/KirkDiggler/lastman/internal/models"
)

// Repository caches competition snapshots and stores channel watches
type Repository interface {
	// SaveSnapshot caches a competition as fetched by one user
	SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error

	// GetSnapshot returns a cached snapshot or ErrSnapshotNotFound
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.CompetitionSnapshot, error)

	// InvalidateSnapshots drops every user's cached snapshot of a competition
	InvalidateSnapshots(ctx context.Context, input *InvalidateSnapshotsInput) error

	// SaveWatch creates or updates a channel watch
	SaveWatch(ctx context.Context, input *SaveWatchInput) error

	// GetWatch returns a watch or ErrWatchNotFound
	GetWatch(ctx context.Context, input *GetWatchInput) (*models.Watch, error)

	// DeleteWatch removes a watch
	DeleteWatch(ctx context.Context, input *DeleteWatchInput) error

	// ListWatches returns all watches, or those of one channel
	ListWatches(ctx context.Context, input *ListWatchesInput) (*ListWatchesOutput, error)
}
