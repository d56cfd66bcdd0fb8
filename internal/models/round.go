package models

import (
	"time"
)

// Round represents one pick round of a competition
type Round struct {
	// ID is the unique identifier for the round
	ID string `json:"id"`

	// CompetitionID is the competition the round belongs to
	CompetitionID string `json:"competition_id"`

	// RoundNumber increases monotonically per competition
	RoundNumber int `json:"round_number"`

	// LockTime is when picks close; nil means the round is always open
	LockTime *time.Time `json:"lock_time,omitempty"`

	// Status is the server's free-form round status
	Status string `json:"status,omitempty"`

	// FixtureCount is the number of fixtures in the round
	FixtureCount int `json:"fixture_count"`
}

// RoundInfo is the server-reported processing state of a round
type RoundInfo struct {
	// IsLocked is the server's view of whether picks are closed
	IsLocked bool `json:"is_locked"`

	// AllProcessed indicates every fixture result has been applied to players
	AllProcessed bool `json:"all_processed"`
}
