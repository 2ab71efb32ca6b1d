package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

// Ensure Engine implements the interface.
var _ driving.Engine = (*Engine)(nil)

// Engine assembles assessors and batch runners from settings.
type Engine struct {
	models     driven.SourceModelFactory
	derivers   []driven.IntensityDeriver
	store      driven.ReportStore
	normalizer *ResultNormalizer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineDerivers sets the intensity derivers every assessor applies.
func WithEngineDerivers(derivers ...driven.IntensityDeriver) EngineOption {
	return func(e *Engine) {
		e.derivers = append([]driven.IntensityDeriver(nil), derivers...)
	}
}

// WithEngineStore persists reports produced by runners.
func WithEngineStore(store driven.ReportStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithEngineNormalizer replaces the default result normalizer.
func WithEngineNormalizer(n *ResultNormalizer) EngineOption {
	return func(e *Engine) {
		e.normalizer = n
	}
}

// NewEngine creates an engine over a source model factory.
func NewEngine(models driven.SourceModelFactory, opts ...EngineOption) *Engine {
	e := &Engine{
		models:     models,
		normalizer: NewResultNormalizer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assessor validates settings and builds a single-farm assessor.
func (e *Engine) Assessor(settings domain.AssessmentSettings) (driving.FarmAssessor, error) {
	return e.assessor(settings)
}

// Runner builds a batch runner sized by settings.Workers.
func (e *Engine) Runner(settings domain.AssessmentSettings) (driving.BatchRunner, error) {
	a, err := e.assessor(settings)
	if err != nil {
		return nil, err
	}
	return NewBatchOrchestrator(a, WithWorkers(settings.Workers), WithReportStore(e.store)), nil
}

func (e *Engine) assessor(settings domain.AssessmentSettings) (*Assessor, error) {
	if e.models == nil {
		return nil, errors.New("source model factory not configured")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	boundary, err := settings.Boundary.Boundary()
	if err != nil {
		return nil, err
	}
	registry, err := e.models.Models(settings.Factors)
	if err != nil {
		return nil, fmt.Errorf("build source models: %w", err)
	}

	return NewAssessor(
		boundary,
		registry,
		NewResolver(settings.Defaults),
		WithNormalizer(e.normalizer),
		WithDerivers(e.derivers...),
	), nil
}
