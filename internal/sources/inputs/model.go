// Package inputs estimates embedded emissions of purchased feed, fertiliser and plastics.
package inputs

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// Input names, also the config keys of their factors.
const (
	Concentrate = "concentrate"
	GrainDry    = "grain_dry"
	GrainWet    = "grain_wet"
	Ration      = "ration"
	Byproducts  = "byproducts"
	Proteins    = "proteins"
	Plastic     = "plastic"
	NFertilizer = "n_fertilizer"
)

// DefaultRegion applies no regional adjustment.
const DefaultRegion = "global"

// DefaultFactors returns cradle-to-farm-gate factors, kg CO2eq per kg
// (per kg N for fertiliser).
func DefaultFactors() map[string]float64 {
	return map[string]float64{
		Concentrate: 0.7,
		GrainDry:    0.4,
		GrainWet:    0.3,
		Ration:      0.6,
		Byproducts:  0.15,
		Proteins:    1.8,
		Plastic:     2.5,
		NFertilizer: 6.6,
	}
}

// feedOrder fixes the table row order.
var feedOrder = []string{Concentrate, GrainDry, GrainWet, Ration, Byproducts, Proteins, Plastic, NFertilizer}

// regionMultipliers scale feed factors for regional production systems.
// Plastic and fertiliser are traded globally and are not scaled.
var regionMultipliers = map[string]float64{
	DefaultRegion:   1.0,
	"europe":        0.95,
	"north_america": 1.05,
	"oceania":       1.0,
	"south_america": 1.2,
	"asia":          1.1,
}

// Ensure Model implements the interface.
var _ driven.SourceModel = (*Model)(nil)

// Model computes purchased-input emissions in kg CO2eq.
type Model struct {
	factors map[string]float64
}

// Option configures the model.
type Option func(*Model)

// WithFactor overrides one input factor. Unknown inputs and negative values are ignored.
func WithFactor(input string, kgCO2eqPerKg float64) Option {
	return func(m *Model) {
		if _, ok := m.factors[input]; ok && kgCO2eqPerKg >= 0 {
			m.factors[input] = kgCO2eqPerKg
		}
	}
}

// New creates an inputs model with the given options.
func New(opts ...Option) *Model {
	m := &Model{factors: DefaultFactors()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source name.
func (m *Model) Name() string {
	return domain.SourceInputs
}

// Compute reports the total under total_co2eq_kg with a per-input table.
// Unknown regions fail with domain.ErrInvalidInput.
func (m *Model) Compute(activity domain.Activity, boundary domain.Boundary) (domain.SourceResult, error) {
	if !boundary.Includes(domain.SourceInputs) {
		return domain.ExcludedResult(domain.SourceInputs), nil
	}

	a := activity.Inputs
	if a == nil {
		return domain.SourceResult{}, fmt.Errorf("%w: inputs activity missing", domain.ErrInvalidInput)
	}

	region := strings.ToLower(strings.TrimSpace(a.Region))
	if region == "" {
		region = DefaultRegion
	}
	multiplier, ok := regionMultipliers[region]
	if !ok {
		return domain.SourceResult{}, fmt.Errorf("%w: unknown region %q", domain.ErrInvalidInput, a.Region)
	}

	quantities := map[string]float64{
		Concentrate: a.ConcentrateKg,
		GrainDry:    a.GrainDryKg,
		GrainWet:    a.GrainWetKg,
		Ration:      a.RationKg,
		Byproducts:  a.ByproductsKg,
		Proteins:    a.ProteinsKg,
		Plastic:     a.PlasticKg,
		NFertilizer: a.NFertilizerKg,
	}

	table := &domain.Table{Columns: []string{"input", "quantity_kg", "factor", "co2eq_kg"}}
	var total float64
	for _, name := range feedOrder {
		qty := quantities[name]
		if err := domain.CheckQuantity(name+"_kg", qty); err != nil {
			return domain.SourceResult{}, err
		}
		factor := m.factors[name]
		if name != Plastic && name != NFertilizer {
			factor *= multiplier
		}
		co2eq := qty * factor
		table.Rows = append(table.Rows, []any{name, qty, factor, co2eq})
		total += co2eq
	}

	return domain.SourceResult{
		Source:   domain.SourceInputs,
		Category: "purchased",
		Fields: map[string]*float64{
			"total_co2eq_kg": domain.Float(total),
		},
		Breakdowns: map[string]domain.Breakdown{
			"emissions_breakdown": {Table: table},
		},
		Extra: map[string]any{"region": region},
	}, nil
}
