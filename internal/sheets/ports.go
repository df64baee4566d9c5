package sheets

import (
	"context"

	"habits/internal/core"
)

// Ports for outbound adapters.
type (
	// MonthExporter writes one month record to an external spreadsheet and
	// returns a reference to where it landed.
	MonthExporter interface {
		ExportMonth(ctx context.Context, record core.MonthRecord) (ref string, err error)
	}
)
