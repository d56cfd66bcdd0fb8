package competition

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/common/uuid"
	"github.com/KirkDiggler/lastman/internal/models"
	mutationRepo "github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger"
	sessionRepo "github.com/KirkDiggler/lastman/internal/repositories/session"
	snapshotRepo "github.com/KirkDiggler/lastman/internal/repositories/snapshot"
	"github.com/KirkDiggler/lastman/internal/rules"
)

// Config holds configuration for the competition service
type Config struct {
	// SnapshotTTL is how long a fetched competition is served from cache
	SnapshotTTL time.Duration

	// PageOptions controls standings pagination
	PageOptions rules.PageOptions

	// PagerCapacity bounds how many standings messages keep a page cursor
	PagerCapacity int

	// PendingMutationMaxAge is how long an unresolved result change blocks
	// further changes before it is reverted as abandoned
	PendingMutationMaxAge time.Duration

	// API dependency
	APIClient api.Client

	// Repository dependencies
	SnapshotRepo       snapshotRepo.Repository
	SessionRepo        sessionRepo.Repository
	MutationLedgerRepo mutationRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *slog.Logger
}

// Caller identifies who is asking. UserID names a linked chat user whose
// stored session is used; Session, when set, is used as-is and never stored.
type Caller struct {
	UserID  string
	Session *models.Session
}

// LinkInput contains parameters for linking a chat user to the LMS API.
// Either Token or Email and Password must be set.
type LinkInput struct {
	UserID   string
	Email    string
	Password string
	Token    string
}

// LinkOutput contains the stored session
type LinkOutput struct {
	Session *models.Session
}

// UnlinkInput contains parameters for unlinking a chat user
type UnlinkInput struct {
	UserID string
}

// UnlinkOutput is empty
type UnlinkOutput struct{}

// ListCompetitionsInput contains parameters for listing competitions
type ListCompetitionsInput struct {
	Caller
}

// ListCompetitionsOutput contains the caller's competitions
type ListCompetitionsOutput struct {
	Competitions []*models.Competition
}

// RefreshInput contains parameters for a forced reload
type RefreshInput struct {
	Caller
	CompetitionID string
}

// RefreshOutput contains the reloaded snapshot
type RefreshOutput struct {
	Snapshot *models.CompetitionSnapshot
}

// GetRoundViewInput contains parameters for viewing the current round
type GetRoundViewInput struct {
	Caller
	CompetitionID string

	// Refresh bypasses the cache
	Refresh bool
}

// GetRoundViewOutput describes the current round as the caller sees it
type GetRoundViewOutput struct {
	Competition *models.Competition

	// NoRounds is set when the organiser has not created a round yet
	NoRounds bool

	Round     *models.Round
	Fixtures  []*models.Fixture
	Locked    bool
	Completed bool

	// Me is the caller's player record, nil if they do not play
	Me *models.Player

	// MyOutcome is the caller's outcome for this round
	MyOutcome models.PickResult

	ActivePlayers int
	FetchedAt     time.Time
}

// GetStandingsInput contains parameters for a standings page
type GetStandingsInput struct {
	Caller
	CompetitionID string

	// ViewID identifies the message or client showing the table. When set the
	// page resets to 1 whenever the player set changes.
	ViewID string

	// Page is 1-based
	Page int

	Refresh bool
}

// GetStandingsOutput contains one page of standings
type GetStandingsOutput struct {
	Competition     *models.Competition
	Locked          bool
	Page            rules.Page[*models.PlayerStanding]
	ActiveCount     int
	EliminatedCount int
	Fingerprint     string
	FetchedAt       time.Time
}

// ForgetViewInput identifies the standings view to drop
type ForgetViewInput struct {
	ViewID string
}

// ForgetViewOutput is empty
type ForgetViewOutput struct{}

// GetPlayerResultsInput contains parameters for a player's history
type GetPlayerResultsInput struct {
	Caller
	CompetitionID string

	// PlayerID defaults to the caller
	PlayerID string
}

// PlayerResult is one history entry with its normalised outcome
type PlayerResult struct {
	Entry   *models.RoundHistoryEntry
	Outcome models.PickResult

	// Hidden is set when the pick may not be shown to the caller yet
	Hidden bool
}

// GetPlayerResultsOutput contains a player's history, oldest first
type GetPlayerResultsOutput struct {
	Player  *models.Player
	Results []*PlayerResult
	Stats   rules.PlayerStats
}

// SubmitPickInput contains parameters for submitting a pick
type SubmitPickInput struct {
	Caller
	CompetitionID string
	Team          string
}

// SubmitPickOutput contains the accepted pick
type SubmitPickOutput struct {
	Round   *models.Round
	Fixture *models.Fixture
	Team    string
	Message string
}

// SetFixtureResultInput contains parameters for recording a result
type SetFixtureResultInput struct {
	Caller
	CompetitionID string
	FixtureID     string

	// Result is a team short code or DRAW
	Result string
}

// SetFixtureResultOutput contains the confirmed change
type SetFixtureResultOutput struct {
	Fixture  *models.Fixture
	Mutation *models.Mutation

	// Preview shows what processing will do to each active player who
	// picked a team in the fixture
	Preview []*ResultPreview
}

// ResultPreview is one player's lives before and after a result is processed
type ResultPreview struct {
	Before  *models.Player
	After   *models.Player
	Outcome models.PickResult
}

// ProcessResultsInput contains parameters for processing results
type ProcessResultsInput struct {
	Caller
	CompetitionID string
}

// ProcessResultsOutput reports what processing did
type ProcessResultsOutput struct {
	Code           api.ReturnCode
	Message        string
	Processed      int
	Eliminated     int
	NewRoundNumber int

	// Divergence is ErrProcessingDivergence when the server reported success
	// but does not yet show the round as processed
	Divergence error
}

// CreateRoundInput contains parameters for opening a round
type CreateRoundInput struct {
	Caller
	CompetitionID string
	LockTime      time.Time
}

// CreateRoundOutput contains the new round
type CreateRoundOutput struct {
	Round *models.Round
}

// JoinCompetitionInput contains parameters for joining
type JoinCompetitionInput struct {
	Caller
	InviteCode string
}

// JoinCompetitionOutput contains the joined competition
type JoinCompetitionOutput struct {
	Competition *models.Competition
	Message     string
}

// WatchInput contains parameters for watching a competition
type WatchInput struct {
	UserID        string
	ChannelID     string
	CompetitionID string
}

// WatchOutput contains the stored watch
type WatchOutput struct {
	Watch *models.Watch
}

// UnwatchInput contains parameters for removing a watch
type UnwatchInput struct {
	ChannelID     string
	CompetitionID string
}

// UnwatchOutput is empty
type UnwatchOutput struct{}

// ListWatchesInput contains parameters for listing watches
type ListWatchesInput struct {
	// ChannelID limits the list to one channel
	ChannelID string
}

// ListWatchesOutput contains the watches
type ListWatchesOutput struct {
	Watches []*models.Watch
}

// CheckWatchInput contains the watch to check
type CheckWatchInput struct {
	Watch *models.Watch
}

// WatchEventKind is a change noticed on a watched competition
type WatchEventKind string

const (
	WatchEventNewRound            WatchEventKind = "new_round"
	WatchEventRoundLocked         WatchEventKind = "round_locked"
	WatchEventRoundCompleted      WatchEventKind = "round_completed"
	WatchEventCompetitionComplete WatchEventKind = "competition_complete"
	WatchEventDivergence          WatchEventKind = "divergence"
)

// WatchEvent is one change to announce
type WatchEvent struct {
	Kind        WatchEventKind
	ChannelID   string
	Competition *models.Competition
	Round       *models.Round

	// Survivors is set for WatchEventCompetitionComplete
	Survivors []*models.Player

	// Err is set for WatchEventDivergence
	Err error
}

// CheckWatchOutput contains the updated watch and the events to announce
type CheckWatchOutput struct {
	Watch    *models.Watch
	Snapshot *models.CompetitionSnapshot
	Events   []*WatchEvent
}
