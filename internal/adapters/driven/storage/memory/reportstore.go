package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.BatchReport
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]domain.BatchReport),
	}
}

// Save stores or replaces a report.
func (s *ReportStore) Save(_ context.Context, report *domain.BatchReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *report
	r.Entries = append([]domain.BatchEntry(nil), report.Entries...)
	s.reports[r.ID] = r
	return nil
}

// Get retrieves a report by ID.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.BatchReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Entries = append([]domain.BatchEntry(nil), r.Entries...)
	return &r, nil
}

// List returns report headers, newest first. A limit of 0 returns all.
func (s *ReportStore) List(_ context.Context, limit int) ([]domain.BatchReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.BatchReport, 0, len(s.reports))
	for _, r := range s.reports {
		r.Entries = nil
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a report.
func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}
