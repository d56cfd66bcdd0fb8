package models

// PlayerStanding is a player with the statistics shown on the standings table
type PlayerStanding struct {
	// Player is the underlying player record
	Player *Player `json:"player"`

	// IsCurrentUser indicates the standing belongs to the viewer
	IsCurrentUser bool `json:"is_current_user"`

	// CurrentStreak is the length of the trailing run of StreakType outcomes
	CurrentStreak int `json:"current_streak"`

	// StreakType is win, loss, or empty when there is no win/loss in the window
	StreakType PickResult `json:"streak_type,omitempty"`

	// WinRate is the rounded percentage of wins over the recent window
	WinRate int `json:"win_rate"`

	// RecentForm is the last few normalised outcomes, oldest first
	RecentForm []PickResult `json:"recent_form"`

	// EliminationPick is the losing pick that eliminated the player, if any
	EliminationPick *RoundHistoryEntry `json:"elimination_pick,omitempty"`

	// PickVisible indicates whether the viewer may see the player's current pick
	PickVisible bool `json:"pick_visible"`
}

// Standings partitions players into active and eliminated groups
type Standings struct {
	// Active players, current user first then alphabetical
	Active []*PlayerStanding `json:"active"`

	// Eliminated players, current user first then alphabetical
	Eliminated []*PlayerStanding `json:"eliminated"`
}
