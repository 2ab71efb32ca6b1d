package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

type stubFactory struct {
	registry driven.SourceModelRegistry
	err      error
	got      []domain.FactorSettings
}

func (f *stubFactory) Models(factors domain.FactorSettings) (driven.SourceModelRegistry, error) {
	f.got = append(f.got, factors)
	if f.err != nil {
		return nil, f.err
	}
	return f.registry, nil
}

func TestEngine_Assessor(t *testing.T) {
	factory := &stubFactory{registry: exampleRegistry()}
	engine := NewEngine(factory)

	settings := domain.DefaultAssessmentSettings()
	settings.Boundary = domain.BoundarySpec{Scope: domain.ScopePartial, Include: []string{domain.SourceEnteric}}
	settings.Factors.GWPCH4 = 28

	a, err := engine.Assessor(settings)

	require.NoError(t, err)
	assert.True(t, a.Boundary().Includes(domain.SourceEnteric))
	assert.False(t, a.Boundary().Includes(domain.SourceSoil))
	require.Len(t, factory.got, 1)
	assert.Equal(t, 28.0, factory.got[0].GWPCH4)
}

func TestEngine_InvalidSettings(t *testing.T) {
	factory := &stubFactory{registry: exampleRegistry()}
	engine := NewEngine(factory)

	settings := domain.DefaultAssessmentSettings()
	settings.Workers = 0

	_, err := engine.Runner(settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, factory.got)
}

func TestEngine_FactoryError(t *testing.T) {
	engine := NewEngine(&stubFactory{err: errors.New("bad factor")})

	_, err := engine.Assessor(domain.DefaultAssessmentSettings())

	assert.ErrorContains(t, err, "bad factor")
}

func TestEngine_NoFactory(t *testing.T) {
	_, err := NewEngine(nil).Assessor(domain.DefaultAssessmentSettings())

	assert.Error(t, err)
}

func TestEngine_RunnerPersists(t *testing.T) {
	store := memory.NewReportStore()
	engine := NewEngine(
		&stubFactory{registry: exampleRegistry()},
		WithEngineStore(store),
		WithEngineDerivers(stubDeriver{name: "stub"}),
	)

	runner, err := engine.Runner(domain.DefaultAssessmentSettings())
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), []domain.FarmRecord{exampleRecord("f1")}, driving.RunOptions{})
	require.NoError(t, err)

	saved, err := store.Get(context.Background(), report.ID)
	require.NoError(t, err)
	require.Len(t, saved.Entries, 1)
	assert.Equal(t, domain.EntrySucceeded, saved.Entries[0].State)
	assert.Contains(t, saved.Entries[0].Intensities, "stub")
}
