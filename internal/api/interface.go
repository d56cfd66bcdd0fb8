package api

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/KirkDiggler/lastman/internal/api Client

import (
	"context"
)

// Client talks to the remote LMS API. Every call takes the caller's session
// explicitly; nothing is retried automatically.
type Client interface {
	// Login exchanges credentials for a session token
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetCompetitions lists the competitions the user organises or plays in
	GetCompetitions(ctx context.Context, input *GetCompetitionsInput) (*GetCompetitionsOutput, error)

	// GetCompetition fetches one competition header
	GetCompetition(ctx context.Context, input *GetCompetitionInput) (*GetCompetitionOutput, error)

	// GetStandings fetches every player of a competition with history
	GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error)

	// GetCurrentRound fetches the current round and its fixtures
	GetCurrentRound(ctx context.Context, input *GetCurrentRoundInput) (*GetCurrentRoundOutput, error)

	// SubmitPick sets the user's pick for the current round
	SubmitPick(ctx context.Context, input *SubmitPickInput) (*SubmitPickOutput, error)

	// SetFixtureResult records a fixture result (organiser only)
	SetFixtureResult(ctx context.Context, input *SetFixtureResultInput) (*SetFixtureResultOutput, error)

	// ProcessResults applies entered results to players' lives (organiser only)
	ProcessResults(ctx context.Context, input *ProcessResultsInput) (*ProcessResultsOutput, error)

	// CreateRound opens a new round (organiser only)
	CreateRound(ctx context.Context, input *CreateRoundInput) (*CreateRoundOutput, error)

	// JoinCompetition joins a competition by invite code
	JoinCompetition(ctx context.Context, input *JoinCompetitionInput) (*JoinCompetitionOutput, error)
}
