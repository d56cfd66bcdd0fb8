package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"

	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/models"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// ExportError is a custom error type for export errors
type ExportError string

// Error implements the error interface
func (e ExportError) Error() string {
	return string(e)
}

const (
	ErrNilConfig             ExportError = "config cannot be nil"
	ErrNilCompetitionService ExportError = "competition service cannot be nil"
	ErrNilClock              ExportError = "clock cannot be nil"
	ErrInvalidInput          ExportError = "competition ID is required"
)

const (
	standingsSheet = "Standings"
	timeLayout     = "2006-01-02 15:04"
)

var standingsHeader = []interface{}{
	"Position", "Player", "Status", "Lives", "Current pick", "Streak", "Win rate", "Form", "Eliminated by",
}

var fixturesHeader = []interface{}{
	"Home", "Away", "Kickoff (UTC)", "Result", "Processed",
}

type exporter struct {
	competitionService competition.Service
	clock              clock.Clock
	logger             *slog.Logger
}

// New creates a new standings exporter
func New(cfg *Config) (*exporter, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.CompetitionService == nil {
		return nil, ErrNilCompetitionService
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &exporter{
		competitionService: cfg.CompetitionService,
		clock:              cfg.Clock,
		logger:             logger.With("component", "export"),
	}, nil
}

// ExportStandings builds the standings workbook
func (e *exporter) ExportStandings(ctx context.Context, input *ExportStandingsInput) (*ExportStandingsOutput, error) {
	if input == nil || input.CompetitionID == "" {
		return nil, ErrInvalidInput
	}

	first, err := e.competitionService.GetStandings(ctx, &competition.GetStandingsInput{
		Caller:        input.Caller,
		CompetitionID: input.CompetitionID,
		Page:          1,
		Refresh:       input.Refresh,
	})
	if err != nil {
		return nil, err
	}

	standings := append([]*models.PlayerStanding{}, first.Page.Items...)
	for page := 2; page <= first.Page.TotalPages; page++ {
		next, err := e.competitionService.GetStandings(ctx, &competition.GetStandingsInput{
			Caller:        input.Caller,
			CompetitionID: input.CompetitionID,
			Page:          page,
		})
		if err != nil {
			return nil, err
		}
		standings = append(standings, next.Page.Items...)
	}

	round, err := e.competitionService.GetRoundView(ctx, &competition.GetRoundViewInput{
		Caller:        input.Caller,
		CompetitionID: input.CompetitionID,
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), standingsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeStandings(f, bold, standings); err != nil {
		return nil, err
	}
	if !round.NoRounds {
		if err := writeFixtures(f, bold, round.Round, round.Fixtures); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	fileName := fileName(first.Competition, round.Round, e.clock.Now().Format("2006-01-02"))
	e.logger.Info("standings exported",
		"competition_id", input.CompetitionID,
		"players", len(standings),
		"file", fileName,
	)

	return &ExportStandingsOutput{
		FileName: fileName,
		Data:     buf.Bytes(),
		Players:  len(standings),
	}, nil
}

func writeStandings(f *excelize.File, headerStyle int, standings []*models.PlayerStanding) error {
	if err := f.SetSheetRow(standingsSheet, "A1", &standingsHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(standingsSheet, "A1", "I1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, s := range standings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			i + 1,
			s.Player.DisplayName,
			string(s.Player.Status),
			s.Player.LivesRemaining,
			pickCell(s),
			streakCell(s),
			fmt.Sprintf("%d%%", s.WinRate),
			formCell(s.RecentForm),
			eliminatedByCell(s.EliminationPick),
		}
		if err := f.SetSheetRow(standingsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(standingsSheet, "B", "B", 24); err != nil {
		return err
	}
	return f.SetColWidth(standingsSheet, "E", "I", 14)
}

func writeFixtures(f *excelize.File, headerStyle int, round *models.Round, fixtures []*models.Fixture) error {
	sheet := fmt.Sprintf("Round %d", round.RoundNumber)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &fixturesHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, fx := range fixtures {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		kickoff := ""
		if !fx.KickoffTime.IsZero() {
			kickoff = fx.KickoffTime.UTC().Format(timeLayout)
		}
		processed := "no"
		if fx.IsProcessed() {
			processed = "yes"
		}
		row := []interface{}{fx.HomeTeam, fx.AwayTeam, kickoff, fx.Result, processed}
		if fx.HomeTeam == "" {
			row[0] = fx.HomeTeamShort
		}
		if fx.AwayTeam == "" {
			row[1] = fx.AwayTeamShort
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

func pickCell(s *models.PlayerStanding) string {
	if !s.PickVisible {
		return "hidden"
	}
	return s.Player.CurrentPick
}

func streakCell(s *models.PlayerStanding) string {
	switch s.StreakType {
	case models.PickResultWin:
		return fmt.Sprintf("%dW", s.CurrentStreak)
	case models.PickResultLoss:
		return fmt.Sprintf("%dL", s.CurrentStreak)
	default:
		return ""
	}
}

func formCell(form []models.PickResult) string {
	letters := make([]string, 0, len(form))
	for _, r := range form {
		switch r {
		case models.PickResultWin:
			letters = append(letters, "W")
		case models.PickResultLoss, models.PickResultDraw:
			letters = append(letters, "L")
		case models.PickResultNoPick:
			letters = append(letters, "-")
		default:
			letters = append(letters, "?")
		}
	}
	return strings.Join(letters, " ")
}

func eliminatedByCell(entry *models.RoundHistoryEntry) string {
	if entry == nil {
		return ""
	}
	return fmt.Sprintf("%s (round %d)", entry.PickTeam, entry.RoundNumber)
}

func fileName(c *models.Competition, round *models.Round, date string) string {
	name := "competition"
	if c != nil && slug.Make(c.Name) != "" {
		name = slug.Make(c.Name)
	}
	if round != nil {
		return fmt.Sprintf("%s-round-%d-%s.xlsx", name, round.RoundNumber, date)
	}
	return fmt.Sprintf("%s-%s.xlsx", name, date)
}
