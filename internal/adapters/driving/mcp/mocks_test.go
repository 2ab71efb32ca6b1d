package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AssessmentSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AssessmentSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(*domain.AssessmentSettings) error { return m.err }
func (m *mockSettingsService) Set(string, string) error              { return m.err }
func (m *mockSettingsService) Keys() []string                        { return nil }

func (m *mockSettingsService) GetDefaults() domain.AssessmentSettings {
	return domain.DefaultAssessmentSettings()
}

func (m *mockSettingsService) ModelConfigs() map[string]map[string]any { return nil }

// mockAssessor is a mock implementation of driving.FarmAssessor.
type mockAssessor struct {
	boundary domain.Boundary
	entry    domain.BatchEntry
	err      error
}

func (m *mockAssessor) Assess(rec domain.FarmRecord) (domain.BatchEntry, error) {
	e := m.entry
	e.FarmID = rec.FarmID
	return e, m.err
}

func (m *mockAssessor) Boundary() domain.Boundary { return m.boundary }

// mockEngine is a mock implementation of driving.Engine.
type mockEngine struct {
	assessor *mockAssessor
	err      error
	got      []domain.AssessmentSettings
}

func (m *mockEngine) Assessor(s domain.AssessmentSettings) (driving.FarmAssessor, error) {
	m.got = append(m.got, s)
	if m.err != nil {
		return nil, m.err
	}
	boundary, err := s.Boundary.Boundary()
	if err != nil {
		return nil, err
	}
	m.assessor.boundary = boundary
	return m.assessor, nil
}

func (m *mockEngine) Runner(domain.AssessmentSettings) (driving.BatchRunner, error) {
	return nil, m.err
}

// mockAggregator is a mock implementation of driving.Aggregator.
type mockAggregator struct {
	total   domain.AggregatedTotal
	contrib []domain.NormalizedContribution
	err     error
	results []domain.SourceResult
	names   []string
}

func (m *mockAggregator) AggregateResults(
	results []domain.SourceResult,
	names []string,
) (domain.AggregatedTotal, []domain.NormalizedContribution, error) {
	m.results = results
	m.names = names
	return m.total, m.contrib, m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	reports []domain.BatchReport
	err     error
}

func (m *mockReportService) Get(_ context.Context, id string) (*domain.BatchReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.reports {
		if m.reports[i].ID == id {
			return &m.reports[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockReportService) List(_ context.Context, _ int) ([]domain.BatchReport, error) {
	return m.reports, m.err
}

func (m *mockReportService) Delete(_ context.Context, _ string) error { return m.err }

func newTestPorts() *Ports {
	return &Ports{
		Engine: &mockEngine{assessor: &mockAssessor{
			entry: domain.BatchEntry{State: domain.EntrySucceeded, Total: domain.Float(42)},
		}},
		Settings:   &mockSettingsService{settings: domain.DefaultAssessmentSettings()},
		Aggregator: &mockAggregator{},
	}
}

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
