package scheduler

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/lastman/internal/scheduler Notifier

import (
	"context"

	"github.com/KirkDiggler/lastman/internal/live"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// Notifier posts watch events to a chat channel
type Notifier interface {
	Announce(ctx context.Context, input *AnnounceInput) error
}

// Broadcaster pushes messages to live feed subscribers
type Broadcaster interface {
	BroadcastToRoom(room string, msg *live.Message) int
}

// AnnounceInput contains the events for one channel
type AnnounceInput struct {
	ChannelID string
	Events    []*competition.WatchEvent
}
