package rules

import (
	"github.com/KirkDiggler/lastman/internal/models"
)

// Classify maps a fixture result and a pick to an outcome. fixtureResult and
// pick use the empty string for "none". A locked round whose fixture has no
// result yet is still pending.
func Classify(fixtureResult, pick string, locked bool) models.PickResult {
	if !locked {
		return models.PickResultPending
	}
	if pick == "" {
		return models.PickResultNoPick
	}
	if fixtureResult == "" {
		return models.PickResultPending
	}
	if fixtureResult == pick {
		return models.PickResultWin
	}
	return models.PickResultLoss
}

// NormalizeEntry classifies a history entry with the same rules used for
// fixture cards, so a draw reported by the server is always a loss.
func NormalizeEntry(entry *models.RoundHistoryEntry) models.PickResult {
	if entry == nil {
		return models.PickResultPending
	}

	switch entry.PickResult {
	case models.PickResultPending:
		return models.PickResultPending
	case models.PickResultNoPick:
		return models.PickResultNoPick
	}

	if entry.FixtureResult != "" {
		return Classify(entry.FixtureResult, entry.PickTeam, true)
	}

	switch entry.PickResult {
	case models.PickResultWin:
		if entry.PickTeam == "" {
			return models.PickResultNoPick
		}
		return models.PickResultWin
	case models.PickResultDraw, models.PickResultLoss:
		if entry.PickTeam == "" {
			return models.PickResultNoPick
		}
		return models.PickResultLoss
	default:
		return models.PickResultPending
	}
}

// FixtureForTeam returns the fixture the team plays in, or nil.
func FixtureForTeam(fixtures []*models.Fixture, team string) *models.Fixture {
	for _, f := range fixtures {
		if f.Involves(team) {
			return f
		}
	}
	return nil
}

// ClassifyPick classifies a player's current pick against the round's fixtures.
func ClassifyPick(fixtures []*models.Fixture, pick string, locked bool) models.PickResult {
	if !locked || pick == "" {
		return Classify("", pick, locked)
	}
	fixture := FixtureForTeam(fixtures, pick)
	if fixture == nil {
		return models.PickResultPending
	}
	return Classify(fixture.Result, pick, locked)
}
