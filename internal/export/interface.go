package export

//go:generate mockgen -package=mocks -destination=mocks/mock_exporter.go github.com/KirkDiggler/lastman/internal/export Exporter

import (
	"context"
)

// Exporter builds downloadable workbooks of competition state
type Exporter interface {
	// ExportStandings builds a workbook with the full standings table and the
	// current round's fixtures
	ExportStandings(ctx context.Context, input *ExportStandingsInput) (*ExportStandingsOutput, error)
}
