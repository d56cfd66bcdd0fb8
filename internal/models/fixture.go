package models

import (
	"time"
)

// ResultDraw is the fixture result recorded for a drawn match
const ResultDraw = "DRAW"

// Fixture represents a single match within a round
type Fixture struct {
	// ID is the unique identifier for the fixture
	ID string `json:"id"`

	// RoundID is the round the fixture belongs to
	RoundID string `json:"round_id"`

	// HomeTeam is the full name of the home team
	HomeTeam string `json:"home_team"`

	// HomeTeamShort is the short code of the home team
	HomeTeamShort string `json:"home_team_short"`

	// AwayTeam is the full name of the away team
	AwayTeam string `json:"away_team"`

	// AwayTeamShort is the short code of the away team
	AwayTeamShort string `json:"away_team_short"`

	// KickoffTime is the scheduled kickoff
	KickoffTime time.Time `json:"kickoff_time"`

	// Result is the winning short code, ResultDraw, or empty when not played
	Result string `json:"result,omitempty"`

	// Processed is when the result was applied to players' lives
	Processed *time.Time `json:"processed,omitempty"`
}

// HasResult returns true if a result has been entered
func (f *Fixture) HasResult() bool {
	return f.Result != ""
}

// IsProcessed returns true if elimination processing has run for the fixture
func (f *Fixture) IsProcessed() bool {
	return f.Processed != nil && !f.Processed.IsZero()
}

// Involves returns true if the team short code plays in this fixture
func (f *Fixture) Involves(team string) bool {
	return team != "" && (f.HomeTeamShort == team || f.AwayTeamShort == team)
}

// ValidResult returns true if result is a legal result for this fixture
func (f *Fixture) ValidResult(result string) bool {
	return result == ResultDraw || result == f.HomeTeamShort || result == f.AwayTeamShort
}

// Descriptor returns a short "HOME v AWAY" label
func (f *Fixture) Descriptor() string {
	return f.HomeTeamShort + " v " + f.AwayTeamShort
}
