package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// FarmReader decodes farm records from tabular input.
// Cells that cannot be decoded are recorded in FarmRecord.ParseErrors
// rather than failing the whole read; only unreadable input is an error.
type FarmReader interface {
	// Format returns the input format handled (e.g. "csv").
	Format() string

	// Read decodes every record in input order.
	Read(ctx context.Context, r io.Reader) ([]domain.FarmRecord, error)
}
