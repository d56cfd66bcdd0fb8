package models

// PlayerStatus represents whether a player is still in the competition
type PlayerStatus string

const (
	// PlayerStatusActive indicates the player still has lives
	PlayerStatusActive PlayerStatus = "active"

	// PlayerStatusEliminated indicates the player has lost all lives
	PlayerStatusEliminated PlayerStatus = "eliminated"
)

// PickResult is the outcome of a player's pick for one round
type PickResult string

const (
	// PickResultNoPick indicates the player did not pick before lock
	PickResultNoPick PickResult = "no_pick"

	// PickResultPending indicates the outcome is not known yet
	PickResultPending PickResult = "pending"

	// PickResultWin indicates the picked team won
	PickResultWin PickResult = "win"

	// PickResultDraw is reported by the server for drawn fixtures; it counts as a loss
	PickResultDraw PickResult = "draw"

	// PickResultLoss indicates the picked team did not win
	PickResultLoss PickResult = "loss"
)

// CostsLife returns true if the result decrements a life
func (r PickResult) CostsLife() bool {
	return r == PickResultLoss || r == PickResultDraw || r == PickResultNoPick
}

// Player represents a participant in a competition
type Player struct {
	// ID is the unique identifier of the player
	ID string `json:"id"`

	// DisplayName is the player's public name
	DisplayName string `json:"display_name"`

	// LivesRemaining is the number of lives left (never negative)
	LivesRemaining int `json:"lives_remaining"`

	// Status is active or eliminated
	Status PlayerStatus `json:"status"`

	// CurrentPick is the team short code picked for the current round, empty if none
	CurrentPick string `json:"current_pick,omitempty"`

	// History is the ordered per-round outcome history, oldest first
	History []*RoundHistoryEntry `json:"history,omitempty"`
}

// IsActive returns true if the player has not been eliminated
func (p *Player) IsActive() bool {
	return p.Status == PlayerStatusActive
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	if p.History != nil {
		cp.History = make([]*RoundHistoryEntry, len(p.History))
		for i, entry := range p.History {
			e := *entry
			cp.History[i] = &e
		}
	}
	return &cp
}

// RoundHistoryEntry records one round's pick and outcome for a player
type RoundHistoryEntry struct {
	// RoundID is the round this entry belongs to
	RoundID string `json:"round_id"`

	// RoundNumber is the round's sequence number
	RoundNumber int `json:"round_number"`

	// PickTeam is the picked team's short code, empty if no pick was made
	PickTeam string `json:"pick_team,omitempty"`

	// Fixture is a "HOME v AWAY" descriptor of the picked team's fixture
	Fixture string `json:"fixture,omitempty"`

	// FixtureResult is the fixture's result, empty if not played
	FixtureResult string `json:"fixture_result,omitempty"`

	// PickResult is the server-reported outcome
	PickResult PickResult `json:"pick_result"`
}
