package rules

import (
	"fmt"

	"github.com/KirkDiggler/lastman/internal/models"
)

// RegressionError reports a player who came back from elimination
type RegressionError struct {
	PlayerID string
}

func (e *RegressionError) Error() string {
	return fmt.Sprintf("player %s regressed from eliminated to active", e.PlayerID)
}

// ApplyOutcome returns a copy of the player after the outcome is applied. A
// life is lost on loss, draw or no pick; a player at zero lives is eliminated
// and stays eliminated.
func ApplyOutcome(player *models.Player, outcome models.PickResult) *models.Player {
	next := player.Clone()
	if next.Status == models.PlayerStatusEliminated {
		return next
	}
	if outcome.CostsLife() && next.LivesRemaining > 0 {
		next.LivesRemaining--
	}
	if next.LivesRemaining == 0 {
		next.Status = models.PlayerStatusEliminated
	}
	return next
}

// CheckNoRegression verifies no player eliminated in prev is active in next.
func CheckNoRegression(prev, next []*models.Player) error {
	eliminated := make(map[string]bool, len(prev))
	for _, p := range prev {
		if p != nil && p.Status == models.PlayerStatusEliminated {
			eliminated[p.ID] = true
		}
	}
	for _, p := range next {
		if p != nil && eliminated[p.ID] && p.IsActive() {
			return &RegressionError{PlayerID: p.ID}
		}
	}
	return nil
}

// DeriveCompetitionStatus applies the competition lifecycle: SETUP until the
// first round exists, COMPLETE once at most one active player remains.
func DeriveCompetitionStatus(current models.CompetitionStatus, roundCount, activeCount int) models.CompetitionStatus {
	if current.IsComplete() {
		return current
	}
	if roundCount == 0 {
		return models.CompetitionStatusSetup
	}
	if activeCount <= 1 {
		return models.CompetitionStatusComplete
	}
	return models.CompetitionStatusActive
}
