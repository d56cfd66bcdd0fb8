package models

import (
	"time"
)

// CompetitionStatus represents the lifecycle state of a competition
type CompetitionStatus string

const (
	// CompetitionStatusSetup indicates the organiser has not created a round yet
	CompetitionStatusSetup CompetitionStatus = "SETUP"

	// CompetitionStatusActive indicates at least one round exists and players remain
	CompetitionStatusActive CompetitionStatus = "ACTIVE"

	// CompetitionStatusComplete indicates one or no active players remain
	CompetitionStatusComplete CompetitionStatus = "COMPLETE"
)

// IsSetup returns true if the competition has not started
func (s CompetitionStatus) IsSetup() bool {
	return s == CompetitionStatusSetup
}

// IsActive returns true if the competition is in progress
func (s CompetitionStatus) IsActive() bool {
	return s == CompetitionStatusActive
}

// IsComplete returns true if the competition has finished
func (s CompetitionStatus) IsComplete() bool {
	return s == CompetitionStatusComplete
}

// Competition represents a Last Man Standing competition
type Competition struct {
	// ID is the unique identifier for the competition
	ID string `json:"id"`

	// Name is the organiser's chosen display name
	Name string `json:"name"`

	// Status is the current lifecycle state
	Status CompetitionStatus `json:"status"`

	// CurrentRound is the round number currently in play (0 before the first round)
	CurrentRound int `json:"current_round"`

	// InviteCode is the short code players use to join
	InviteCode string `json:"invite_code,omitempty"`

	// PlayerCount is the number of players who have joined
	PlayerCount int `json:"player_count"`

	// IsOrganiser indicates the requesting user organises this competition
	IsOrganiser bool `json:"is_organiser"`

	// IsParticipant indicates the requesting user plays in this competition
	IsParticipant bool `json:"is_participant"`
}

// CompetitionSnapshot is a cached view of one competition as last fetched from the API
type CompetitionSnapshot struct {
	// Competition is the competition header
	Competition *Competition `json:"competition"`

	// Round is the current round, nil when the competition has no rounds yet
	Round *Round `json:"round,omitempty"`

	// Fixtures are the fixtures of the current round
	Fixtures []*Fixture `json:"fixtures"`

	// RoundInfo is the server-reported round metadata
	RoundInfo *RoundInfo `json:"round_info,omitempty"`

	// Players are all players of the competition with their history
	Players []*Player `json:"players"`

	// FetchedAt is when the snapshot was fetched
	FetchedAt time.Time `json:"fetched_at"`

	// Fingerprint changes whenever the underlying player set changes
	Fingerprint string `json:"fingerprint"`
}

// Clone returns a deep copy of the snapshot
func (s *CompetitionSnapshot) Clone() *CompetitionSnapshot {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Competition != nil {
		c := *s.Competition
		cp.Competition = &c
	}
	if s.Round != nil {
		r := *s.Round
		cp.Round = &r
	}
	if s.RoundInfo != nil {
		info := *s.RoundInfo
		cp.RoundInfo = &info
	}
	if s.Fixtures != nil {
		cp.Fixtures = make([]*Fixture, len(s.Fixtures))
		for i, f := range s.Fixtures {
			fx := *f
			cp.Fixtures[i] = &fx
		}
	}
	if s.Players != nil {
		cp.Players = make([]*Player, len(s.Players))
		for i, p := range s.Players {
			cp.Players[i] = p.Clone()
		}
	}
	return &cp
}

// Player returns the player with the given ID, nil if absent
func (s *CompetitionSnapshot) Player(id string) *Player {
	if id == "" {
		return nil
	}
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Fixture returns the fixture with the given ID, nil if absent
func (s *CompetitionSnapshot) Fixture(id string) *Fixture {
	for _, f := range s.Fixtures {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Watch subscribes a chat channel to round announcements for a competition
type Watch struct {
	// ChannelID is the chat channel that receives announcements
	ChannelID string `json:"channel_id"`

	// CompetitionID is the competition being watched
	CompetitionID string `json:"competition_id"`

	// UserID is the linked user whose session is used for refreshes
	UserID string `json:"user_id"`

	// RoundNumber is the last round number observed
	RoundNumber int `json:"round_number"`

	// Locked is the last observed lock state of that round
	Locked bool `json:"locked"`

	// Completed is the last observed completion state of that round
	Completed bool `json:"completed"`

	// Diverged is set while fixtures look processed but the server disagrees
	Diverged bool `json:"diverged,omitempty"`

	// Finished is set once the competition has been announced as complete
	Finished bool `json:"finished,omitempty"`

	// CreatedAt is when the watch was created
	CreatedAt time.Time `json:"created_at"`
}
