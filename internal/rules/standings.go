package rules

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/lastman/internal/models"
)

const (
	// StatsWindow is how many recent history entries feed streak and win rate
	StatsWindow = 5

	// FormWindow is how many recent outcomes are shown as form dots
	FormWindow = 3
)

// PlayerStats are the derived per-player statistics shown on the standings table
type PlayerStats struct {
	CurrentStreak   int
	StreakType      models.PickResult
	WinRate         int
	RecentForm      []models.PickResult
	EliminationPick *models.RoundHistoryEntry
}

// BuildStandings partitions players into active and eliminated groups. Within
// each group the current user comes first, then players sorted by display name.
func BuildStandings(players []*models.Player, currentUserID string) *models.Standings {
	standings := &models.Standings{
		Active:     []*models.PlayerStanding{},
		Eliminated: []*models.PlayerStanding{},
	}

	for _, player := range players {
		if player == nil {
			continue
		}
		stats := ComputeStats(player)
		standing := &models.PlayerStanding{
			Player:          player,
			IsCurrentUser:   currentUserID != "" && player.ID == currentUserID,
			CurrentStreak:   stats.CurrentStreak,
			StreakType:      stats.StreakType,
			WinRate:         stats.WinRate,
			RecentForm:      stats.RecentForm,
			EliminationPick: stats.EliminationPick,
		}
		if player.IsActive() {
			standings.Active = append(standings.Active, standing)
		} else {
			standings.Eliminated = append(standings.Eliminated, standing)
		}
	}

	// Collators keep internal buffers and are not safe to share.
	col := collate.New(language.BritishEnglish)
	sortStandings(standings.Active, col)
	sortStandings(standings.Eliminated, col)

	return standings
}

func sortStandings(entries []*models.PlayerStanding, col *collate.Collator) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsCurrentUser != b.IsCurrentUser {
			return a.IsCurrentUser
		}
		return col.CompareString(a.Player.DisplayName, b.Player.DisplayName) < 0
	})
}

// ComputeStats derives streak, win rate, form and elimination cause for a player.
func ComputeStats(player *models.Player) PlayerStats {
	outcomes := make([]models.PickResult, len(player.History))
	for i, entry := range player.History {
		outcomes[i] = NormalizeEntry(entry)
	}

	window := outcomes
	if len(window) > StatsWindow {
		window = window[len(window)-StatsWindow:]
	}

	stats := PlayerStats{
		RecentForm: recentForm(window),
		WinRate:    winRate(window),
	}
	stats.CurrentStreak, stats.StreakType = streak(window)

	if player.Status == models.PlayerStatusEliminated {
		stats.EliminationPick = eliminationPick(player.History, outcomes)
	}

	return stats
}

// streak counts the trailing run of the most recent win/loss outcome. Trailing
// pending entries are skipped to find where counting starts; any entry that
// does not match the streak type stops the count.
func streak(window []models.PickResult) (int, models.PickResult) {
	var streakType models.PickResult
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == models.PickResultWin || window[i] == models.PickResultLoss {
			streakType = window[i]
			break
		}
	}
	if streakType == "" {
		return 0, ""
	}

	anchor := len(window) - 1
	for anchor >= 0 && window[anchor] == models.PickResultPending {
		anchor--
	}

	count := 0
	for i := anchor; i >= 0; i-- {
		if window[i] != streakType {
			break
		}
		count++
	}
	return count, streakType
}

func winRate(window []models.PickResult) int {
	if len(window) == 0 {
		return 0
	}
	wins := 0
	for _, outcome := range window {
		if outcome == models.PickResultWin {
			wins++
		}
	}
	return int(math.Round(float64(wins) / float64(len(window)) * 100))
}

func recentForm(window []models.PickResult) []models.PickResult {
	start := 0
	if len(window) > FormWindow {
		start = len(window) - FormWindow
	}
	form := make([]models.PickResult, len(window)-start)
	copy(form, window[start:])
	return form
}

// eliminationPick finds the last losing pick; no-pick losses are not a cause.
func eliminationPick(history []*models.RoundHistoryEntry, outcomes []models.PickResult) *models.RoundHistoryEntry {
	for i := len(history) - 1; i >= 0; i-- {
		if outcomes[i] == models.PickResultLoss && history[i].PickTeam != "" {
			return history[i]
		}
	}
	return nil
}

// CountActive returns the number of players still in the competition.
func CountActive(players []*models.Player) int {
	count := 0
	for _, p := range players {
		if p != nil && p.IsActive() {
			count++
		}
	}
	return count
}

// ApplyVisibility marks which current picks the viewer may see.
func ApplyVisibility(standings *models.Standings, locked bool, viewerID string) {
	active := len(standings.Active)
	for _, group := range [][]*models.PlayerStanding{standings.Active, standings.Eliminated} {
		for _, s := range group {
			s.PickVisible = IsPickVisible(locked, viewerID, s.Player.ID, active)
		}
	}
}
