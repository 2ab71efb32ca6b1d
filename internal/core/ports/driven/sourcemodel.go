package driven

import "github.com/custodia-labs/dairyghg/internal/core/domain"

// SourceModel computes the emissions of one source for one farm.
// Implementations are pure and safe for concurrent use.
type SourceModel interface {
	// Name returns the source name the model reports under (e.g. "enteric").
	Name() string

	// Compute returns the source result for the activity.
	// When the boundary excludes the source, the result must be marked Excluded.
	// Otherwise the total must sit under one of domain.TotalFields.
	// Negative, non-finite or out-of-range inputs fail with domain.ErrInvalidInput
	// before any computation.
	Compute(activity domain.Activity, boundary domain.Boundary) (domain.SourceResult, error)
}

// SourceModelRegistry resolves models by source name.
type SourceModelRegistry interface {
	// Get returns the model for a source, or false if none is registered.
	Get(source string) (SourceModel, bool)

	// Names returns registered source names.
	Names() []string
}

// SourceModelFactory builds source models for a set of warming potentials.
type SourceModelFactory interface {
	// Models returns a registry holding one model per source.
	Models(factors domain.FactorSettings) (SourceModelRegistry, error)
}
