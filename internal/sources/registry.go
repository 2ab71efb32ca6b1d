package sources

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// BuilderFunc creates a SourceModel from generic config.
// Config is a map of model-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.SourceModel, error)

// Registry maps source names to their builders.
// It allows dynamic construction of models from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new model registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a model builder to the registry.
// Name should match the model's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a model by name with the given config.
// Returns an error wrapping domain.ErrUnsupportedType if the name is not registered.
func (r *Registry) Build(name string, cfg map[string]any) (driven.SourceModel, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: source model %s", domain.ErrUnsupportedType, name)
	}
	return builder(cfg)
}

// Has returns true if a builder with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered source names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildAll builds every registered model, passing each its own config.
// A builder returning a model under a different name is an error.
func (r *Registry) BuildAll(configs map[string]map[string]any) (*Models, error) {
	models := &Models{models: make(map[string]driven.SourceModel, len(r.builders))}
	for _, name := range r.Names() {
		m, err := r.Build(name, configs[name])
		if err != nil {
			return nil, fmt.Errorf("build %s model: %w", name, err)
		}
		if m.Name() != name {
			return nil, fmt.Errorf("build %s model: builder returned %q", name, m.Name())
		}
		models.models[name] = m
	}
	return models, nil
}

// Ensure Models implements the interface.
var _ driven.SourceModelRegistry = (*Models)(nil)

// Models is an immutable set of built models, safe for concurrent use.
type Models struct {
	models map[string]driven.SourceModel
}

// Get returns the model for a source.
func (m *Models) Get(source string) (driven.SourceModel, bool) {
	model, ok := m.models[source]
	return model, ok
}

// Names returns the built source names, sorted.
func (m *Models) Names() []string {
	names := make([]string, 0, len(m.models))
	for name := range m.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
