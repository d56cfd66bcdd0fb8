package export

import (
	"log/slog"

	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/services/competition"
)

// ContentType is the MIME type of exported workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Config holds configuration for the exporter
type Config struct {
	CompetitionService competition.Service
	Clock              clock.Clock
	Logger             *slog.Logger
}

// ExportStandingsInput contains parameters for exporting standings
type ExportStandingsInput struct {
	Caller        competition.Caller
	CompetitionID string

	// Refresh reloads the competition before exporting
	Refresh bool
}

// ExportStandingsOutput contains the generated workbook
type ExportStandingsOutput struct {
	FileName string
	Data     []byte

	// Players is the number of player rows written
	Players int
}
