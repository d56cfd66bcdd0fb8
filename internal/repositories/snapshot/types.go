package snapshot

import (
	"time"

	"github.com/KirkDiggler/lastman/internal/models"
)

type SaveSnapshotInput struct {
	// UserID is whose session fetched the snapshot
	UserID   string
	Snapshot *models.CompetitionSnapshot
	// TTL of zero keeps the snapshot until invalidated
	TTL time.Duration
}

type GetSnapshotInput struct {
	UserID        string
	CompetitionID string
}

type InvalidateSnapshotsInput struct {
	CompetitionID string
}

type SaveWatchInput struct {
	Watch *models.Watch
}

type GetWatchInput struct {
	ChannelID     string
	CompetitionID string
}

type DeleteWatchInput struct {
	ChannelID     string
	CompetitionID string
}

type ListWatchesInput struct {
	// ChannelID limits the result to one channel when set
	ChannelID string
}

type ListWatchesOutput struct {
	Watches []*models.Watch
}
