package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// ReportWriter serialises a batch report.
type ReportWriter interface {
	// Format returns the output format produced (e.g. "csv").
	Format() string

	// WriteEntries writes one row per farm.
	WriteEntries(w io.Writer, report *domain.BatchReport) error

	// WriteSummary writes the summary block.
	WriteSummary(w io.Writer, report *domain.BatchReport) error
}

// ReportStore persists batch reports.
type ReportStore interface {
	// Save stores a report and all its entries.
	Save(ctx context.Context, report *domain.BatchReport) error

	// Get retrieves a report by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.BatchReport, error)

	// List returns report headers (no entries), most recent first.
	List(ctx context.Context, limit int) ([]domain.BatchReport, error)

	// Delete removes a report and its entries.
	Delete(ctx context.Context, id string) error
}
