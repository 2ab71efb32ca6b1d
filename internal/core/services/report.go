package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService provides access to stored batch reports.
type ReportService struct {
	store driven.ReportStore
}

// NewReportService creates a new report service.
func NewReportService(store driven.ReportStore) *ReportService {
	return &ReportService{store: store}
}

// Get retrieves a report with its entries.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.BatchReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: report id required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns recent report headers. Negative limits are treated as no limit.
func (s *ReportService) List(ctx context.Context, limit int) ([]domain.BatchReport, error) {
	if limit < 0 {
		limit = 0
	}
	return s.store.List(ctx, limit)
}

// Delete removes a report.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: report id required", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
