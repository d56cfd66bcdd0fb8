package messaging

import (
	"math/rand"
	"time"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"

	// ToneCommiseration is used for losses and eliminations
	ToneCommiseration MessageTone = "commiseration"
)

// GetOutcomeMessageInput contains parameters for getting an outcome message
type GetOutcomeMessageInput struct {
	// PlayerName is the name of the player
	PlayerName string

	// Team is the picked team, empty for no pick
	Team string

	// Outcome is the classified pick outcome
	Outcome models.PickResult

	// LivesRemaining is the player's lives after the outcome
	LivesRemaining int

	// IsPersonalMessage indicates the message is shown only to the player
	IsPersonalMessage bool
}

// GetOutcomeMessageOutput contains the result of getting an outcome message
type GetOutcomeMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetPickMessageInput contains parameters for a pick confirmation
type GetPickMessageInput struct {
	PlayerName string
	Team       string
	Fixture    *models.Fixture
	LockTime   *time.Time
}

// GetPickMessageOutput contains the pick confirmation
type GetPickMessageOutput struct {
	Title   string
	Message string
}

// GetRoundStatusMessageInput is the input for GetRoundStatusMessage
type GetRoundStatusMessageInput struct {
	NoRounds      bool
	RoundNumber   int
	Locked        bool
	Completed     bool
	Finished      bool
	ActivePlayers int
	Tone          MessageTone
}

// GetRoundStatusMessageOutput is the output for GetRoundStatusMessage
type GetRoundStatusMessageOutput struct {
	Message string
}

// GetProcessResultsMessageInput is the input for GetProcessResultsMessage
type GetProcessResultsMessageInput struct {
	Code           api.ReturnCode
	Processed      int
	Eliminated     int
	NewRoundNumber int
	Diverged       bool
}

// GetProcessResultsMessageOutput is the output for GetProcessResultsMessage
type GetProcessResultsMessageOutput struct {
	Title   string
	Message string
}

// GetWatchEventMessageInput is the input for GetWatchEventMessage
type GetWatchEventMessageInput struct {
	Kind            competition.WatchEventKind
	CompetitionName string
	RoundNumber     int
	Survivors       []string
}

// GetWatchEventMessageOutput is the output for GetWatchEventMessage
type GetWatchEventMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is the error returned by the competition service
	Err error

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	// Title is a short heading
	Title string

	// Message is the generated message
	Message string

	// Category is the error category the message was chosen for
	Category api.Category

	// Retry indicates the action may succeed if repeated
	Retry bool
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Rand picks message variants. Defaults to a time-seeded source.
	Rand *rand.Rand
}
