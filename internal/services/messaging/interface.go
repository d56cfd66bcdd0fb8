package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lastman/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetOutcomeMessage returns a message describing a player's pick outcome
	GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error)

	// GetPickMessage returns a confirmation for a submitted pick
	GetPickMessage(ctx context.Context, input *GetPickMessageInput) (*GetPickMessageOutput, error)

	// GetRoundStatusMessage returns a dynamic message based on the round status
	GetRoundStatusMessage(ctx context.Context, input *GetRoundStatusMessageInput) (*GetRoundStatusMessageOutput, error)

	// GetProcessResultsMessage describes what processing results did
	GetProcessResultsMessage(ctx context.Context, input *GetProcessResultsMessageInput) (*GetProcessResultsMessageOutput, error)

	// GetWatchEventMessage returns the announcement for a watched competition change
	GetWatchEventMessage(ctx context.Context, input *GetWatchEventMessageInput) (*GetWatchEventMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
