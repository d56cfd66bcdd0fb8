package rules

import (
	"github.com/KirkDiggler/lastman/internal/models"
)

// FixturesSettled returns true if every fixture has a result and has been processed.
// A round without fixtures is never settled.
func FixturesSettled(fixtures []*models.Fixture) bool {
	if len(fixtures) == 0 {
		return false
	}
	for _, f := range fixtures {
		if !f.HasResult() || !f.IsProcessed() {
			return false
		}
	}
	return true
}

// IsRoundCompleted reconciles local fixture state with the server's round info.
// A complete competition always counts as completed.
func IsRoundCompleted(status models.CompetitionStatus, fixtures []*models.Fixture, locked bool, info *models.RoundInfo) bool {
	if status.IsComplete() {
		return true
	}
	if locked && FixturesSettled(fixtures) {
		return true
	}
	return info != nil && info.IsLocked && info.AllProcessed
}

// DetectDivergence returns true when local state says the round is complete but
// freshly fetched server state disagrees.
func DetectDivergence(localCompleted bool, info *models.RoundInfo) bool {
	if !localCompleted || info == nil {
		return false
	}
	return !(info.IsLocked && info.AllProcessed)
}
