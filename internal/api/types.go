package api

import (
	"time"

	"github.com/KirkDiggler/lastman/internal/models"
)

// LoginInput contains the credentials to log in with
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput contains the token and the API's view of the user
type LoginOutput struct {
	Token       string
	UserID      string
	DisplayName string
	ExpiresAt   time.Time
}

type GetCompetitionsInput struct {
	Session *models.Session
}

type GetCompetitionsOutput struct {
	Competitions []*models.Competition
}

type GetCompetitionInput struct {
	Session       *models.Session
	CompetitionID string
}

type GetCompetitionOutput struct {
	Competition *models.Competition
}

type GetStandingsInput struct {
	Session       *models.Session
	CompetitionID string
}

type GetStandingsOutput struct {
	Players []*models.Player
}

type GetCurrentRoundInput struct {
	Session       *models.Session
	CompetitionID string
}

// GetCurrentRoundOutput holds the current round. NoRounds is set, and Round
// is nil, when the organiser has not created a round yet.
type GetCurrentRoundOutput struct {
	NoRounds  bool
	Message   string
	Round     *models.Round
	Fixtures  []*models.Fixture
	RoundInfo *models.RoundInfo
}

type SubmitPickInput struct {
	Session       *models.Session
	CompetitionID string
	RoundID       string
	Team          string
}

type SubmitPickOutput struct {
	Message string
}

type SetFixtureResultInput struct {
	Session   *models.Session
	FixtureID string
	Result    string
}

type SetFixtureResultOutput struct {
	Message string
}

type ProcessResultsInput struct {
	Session       *models.Session
	CompetitionID string
}

// ProcessResultsOutput reports what processing did. Code is one of
// CodeSuccess, CodeNewRoundCreated, CodeCompetitionComplete or
// CodeNoResultsToProcess.
type ProcessResultsOutput struct {
	Code           ReturnCode
	Message        string
	Processed      int
	Eliminated     int
	NewRoundNumber int
}

type CreateRoundInput struct {
	Session       *models.Session
	CompetitionID string
	LockTime      time.Time
}

type CreateRoundOutput struct {
	Round *models.Round
}

type JoinCompetitionInput struct {
	Session    *models.Session
	InviteCode string
}

type JoinCompetitionOutput struct {
	Competition *models.Competition
	Message     string
}
