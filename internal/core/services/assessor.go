package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
	"github.com/custodia-labs/dairyghg/internal/logger"
)

// Ensure Assessor implements the interface.
var _ driving.FarmAssessor = (*Assessor)(nil)

// Assessor runs the per-farm pipeline: resolve defaults, gate and compute
// each source, normalise, aggregate, enforce the boundary and derive
// intensities. It holds only immutable collaborators and may be shared
// across workers.
type Assessor struct {
	boundary   domain.Boundary
	registry   driven.SourceModelRegistry
	resolver   *Resolver
	derivers   []driven.IntensityDeriver
	normalizer *ResultNormalizer
}

// AssessorOption configures an Assessor.
type AssessorOption func(*Assessor)

// WithNormalizer replaces the default result normalizer.
func WithNormalizer(n *ResultNormalizer) AssessorOption {
	return func(a *Assessor) {
		if n != nil {
			a.normalizer = n
		}
	}
}

// WithDerivers sets the intensity derivers, applied in order.
func WithDerivers(derivers ...driven.IntensityDeriver) AssessorOption {
	return func(a *Assessor) {
		a.derivers = append([]driven.IntensityDeriver(nil), derivers...)
	}
}

// NewAssessor creates an assessor. A nil resolver uses the built-in defaults.
func NewAssessor(
	boundary domain.Boundary,
	registry driven.SourceModelRegistry,
	resolver *Resolver,
	opts ...AssessorOption,
) *Assessor {
	if resolver == nil {
		resolver = NewResolver(domain.DefaultAssessmentSettings().Defaults)
	}
	a := &Assessor{
		boundary:   boundary,
		registry:   registry,
		resolver:   resolver,
		normalizer: NewResultNormalizer(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Boundary returns the boundary the assessor applies.
func (a *Assessor) Boundary() domain.Boundary {
	return a.boundary
}

// Assess computes one farm. Structural problems yield a skipped entry;
// validation, extraction and model failures (including panics) yield a
// failed entry. Only domain.ErrNoContributions is returned as an error.
func (a *Assessor) Assess(rec domain.FarmRecord) (entry domain.BatchEntry, err error) {
	entry = domain.BatchEntry{Index: rec.Row, FarmID: rec.Label()}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("farm %s: recovered from panic: %v", entry.FarmID, r)
			entry = failEntry(entry, fmt.Errorf("internal error: %v", r))
			err = nil
		}
	}()

	// 1. Structural check
	if serr := rec.CheckStructure(); serr != nil {
		logger.Farm(entry.FarmID, "skipped: %v", serr)
		entry.State = domain.EntrySkipped
		entry.Error = serr.Error()
		return entry, nil
	}

	// 2. Default cascade and validation
	farm, rerr := a.resolver.Resolve(rec)
	if rerr != nil {
		logger.Farm(entry.FarmID, "invalid input: %v", rerr)
		return failEntry(entry, rerr), nil
	}
	if len(farm.Defaulted) > 0 {
		entry.Warnings = append(entry.Warnings, "defaults used: "+strings.Join(farm.Defaulted, ", "))
	}

	// 3. Per-source gating, computation and normalisation
	contributions, warnings, cerr := a.contributions(farm)
	entry.Warnings = append(entry.Warnings, warnings...)
	if cerr != nil {
		logger.Farm(entry.FarmID, "failed: %v", cerr)
		return failEntry(entry, cerr), nil
	}

	// 4. Aggregation
	agg, aerr := Aggregate(contributions)
	if aerr != nil {
		if errors.Is(aerr, domain.ErrNoContributions) {
			return entry, fmt.Errorf("farm %s: %w", entry.FarmID, aerr)
		}
		return failEntry(entry, aerr), nil
	}

	// 5. Boundary compliance: the total only ever counts included sources
	breakdown, total, bwarn := a.enforceBoundary(agg.Breakdown)
	entry.Warnings = append(entry.Warnings, bwarn...)

	// 6. Intensities
	intensities, iwarn := a.derive(entry.FarmID, total, farm.Normalization)
	entry.Warnings = append(entry.Warnings, iwarn...)

	entry.State = domain.EntrySucceeded
	entry.Breakdown = breakdown
	entry.Total = domain.Float(total)
	entry.Intensities = intensities

	logger.Farm(entry.FarmID, "total %.2f kg CO2eq over %d sources", total, agg.SourceCount)
	return entry, nil
}

// contributions computes one or more contributions per known source.
// Every source yields at least one contribution so the breakdown always
// carries every name.
func (a *Assessor) contributions(farm domain.ResolvedFarm) ([]domain.NormalizedContribution, []string, error) {
	var (
		out      []domain.NormalizedContribution
		warnings []string
	)

	for _, source := range domain.AllSources() {
		if !a.boundary.Includes(source) {
			logger.Farm(farm.FarmID, "source %s excluded by boundary", source)
			out = append(out, domain.ZeroContribution(source, true))
			continue
		}

		activities := activitiesFor(source, farm)
		if len(activities) == 0 {
			logger.Farm(farm.FarmID, "source %s has no activity", source)
			out = append(out, domain.ZeroContribution(source, false))
			continue
		}

		if a.registry == nil {
			return nil, warnings, fmt.Errorf("source %s: %w: no model registry", source, domain.ErrUnsupportedType)
		}
		model, ok := a.registry.Get(source)
		if !ok {
			return nil, warnings, fmt.Errorf("source %s: %w: no model registered", source, domain.ErrUnsupportedType)
		}

		for _, activity := range activities {
			result, err := model.Compute(activity, a.boundary)
			if err != nil {
				return nil, warnings, fmt.Errorf("source %s: %w", source, err)
			}

			c, err := a.normalizer.Normalize(result, len(out)+1, source)
			if err != nil {
				return nil, warnings, err
			}
			if c.Method.LowConfidence() {
				warnings = append(warnings, fmt.Sprintf("source %s: total recovered by flattening (low confidence)", source))
			}
			out = append(out, c)
		}
	}

	return out, warnings, nil
}

// enforceBoundary zeroes excluded sources and sums the included ones.
func (a *Assessor) enforceBoundary(in map[string]float64) (map[string]float64, float64, []string) {
	var warnings []string

	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]float64, len(in))
	var total float64
	for _, name := range names {
		amount := in[name]
		if !a.boundary.Includes(name) {
			if amount != 0 {
				warnings = append(warnings, fmt.Sprintf("source %s: excluded by boundary, %.2f dropped", name, amount))
			}
			out[name] = 0
			continue
		}
		out[name] = amount
		total += amount
	}

	return out, total, warnings
}

// derive applies every deriver, falling back to the simpler ratio on failure.
func (a *Assessor) derive(farmID string, total float64, in domain.NormalizationInputs) (map[string]domain.Intensity, []string) {
	if len(a.derivers) == 0 {
		return nil, nil
	}

	var warnings []string
	out := make(map[string]domain.Intensity, len(a.derivers))
	for _, d := range a.derivers {
		intensity, err := d.Derive(total, in)
		if err != nil {
			logger.Farm(farmID, "intensity %s fell back: %v", d.Name(), err)
			intensity = d.Fallback(total, in)
			intensity.Fallback = true
			warnings = append(warnings, fmt.Sprintf("intensity %s: fallback used (%v)", d.Name(), err))
		}
		out[d.Name()] = intensity
	}
	return out, warnings
}

// activitiesFor builds the model calls for one source. Enteric is called
// once per non-empty cohort.
func activitiesFor(source string, farm domain.ResolvedFarm) []domain.Activity {
	switch source {
	case domain.SourceEnteric:
		var out []domain.Activity
		for i := range farm.Enteric {
			if farm.Enteric[i].IsZero() {
				continue
			}
			cohort := farm.Enteric[i]
			out = append(out, domain.Activity{Enteric: &cohort})
		}
		return out
	case domain.SourceManure:
		if farm.Manure.IsZero() {
			return nil
		}
		m := farm.Manure
		return []domain.Activity{{Manure: &m}}
	case domain.SourceSoil:
		if farm.Soil.IsZero() {
			return nil
		}
		s := farm.Soil
		return []domain.Activity{{Soil: &s}}
	case domain.SourceEnergy:
		if farm.Energy.IsZero() {
			return nil
		}
		e := farm.Energy
		return []domain.Activity{{Energy: &e}}
	case domain.SourceInputs:
		if farm.Inputs.IsZero() {
			return nil
		}
		in := farm.Inputs
		return []domain.Activity{{Inputs: &in}}
	}
	return nil
}

// failEntry marks an entry failed and clears numeric outputs.
func failEntry(entry domain.BatchEntry, err error) domain.BatchEntry {
	entry.State = domain.EntryFailed
	entry.Error = err.Error()
	entry.Breakdown = nil
	entry.Total = nil
	entry.Intensities = nil
	return entry
}
