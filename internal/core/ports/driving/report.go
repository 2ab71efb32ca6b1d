package driving

import (
	"context"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// ReportService provides access to stored batch reports.
type ReportService interface {
	// Get retrieves a report with its entries.
	Get(ctx context.Context, id string) (*domain.BatchReport, error)

	// List returns recent report headers.
	List(ctx context.Context, limit int) ([]domain.BatchReport, error)

	// Delete removes a report.
	Delete(ctx context.Context, id string) error
}
