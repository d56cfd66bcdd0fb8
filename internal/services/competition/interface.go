package competition

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lastman/internal/services/competition Service

import "context"

// Service defines the operations chat and HTTP surfaces perform on competitions
type Service interface {
	// Link stores an API session for a chat user
	Link(ctx context.Context, input *LinkInput) (*LinkOutput, error)

	// Unlink forgets a chat user's session
	Unlink(ctx context.Context, input *UnlinkInput) (*UnlinkOutput, error)

	// ListCompetitions lists the caller's competitions
	ListCompetitions(ctx context.Context, input *ListCompetitionsInput) (*ListCompetitionsOutput, error)

	// Refresh reloads a competition from the API, bypassing the cache
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)

	// GetRoundView returns the current round with lock and completion state
	GetRoundView(ctx context.Context, input *GetRoundViewInput) (*GetRoundViewOutput, error)

	// GetStandings returns one page of the standings table
	GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error)

	// ForgetView drops the page cursor of a standings message that went away
	ForgetView(ctx context.Context, input *ForgetViewInput) (*ForgetViewOutput, error)

	// GetPlayerResults returns a player's round-by-round history
	GetPlayerResults(ctx context.Context, input *GetPlayerResultsInput) (*GetPlayerResultsOutput, error)

	// SubmitPick picks a team for the current round
	SubmitPick(ctx context.Context, input *SubmitPickInput) (*SubmitPickOutput, error)

	// SetFixtureResult records a result optimistically (organiser only)
	SetFixtureResult(ctx context.Context, input *SetFixtureResultInput) (*SetFixtureResultOutput, error)

	// ProcessResults applies entered results to players' lives (organiser only)
	ProcessResults(ctx context.Context, input *ProcessResultsInput) (*ProcessResultsOutput, error)

	// CreateRound opens the next round (organiser only)
	CreateRound(ctx context.Context, input *CreateRoundInput) (*CreateRoundOutput, error)

	// JoinCompetition joins by invite code
	JoinCompetition(ctx context.Context, input *JoinCompetitionInput) (*JoinCompetitionOutput, error)

	// Watch subscribes a channel to round announcements
	Watch(ctx context.Context, input *WatchInput) (*WatchOutput, error)

	// Unwatch removes a channel subscription
	Unwatch(ctx context.Context, input *UnwatchInput) (*UnwatchOutput, error)

	// ListWatches lists channel subscriptions
	ListWatches(ctx context.Context, input *ListWatchesInput) (*ListWatchesOutput, error)

	// CheckWatch refreshes a watched competition and reports what changed
	CheckWatch(ctx context.Context, input *CheckWatchInput) (*CheckWatchOutput, error)
}
