// Package soil estimates nitrous oxide from nitrogen applied to or deposited on managed soils.
package soil

import (
	"fmt"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// Factors holds the emission and partitioning factors, all kg per kg N.
type Factors struct {
	// EF1 is direct N2O-N from applied fertiliser and manure.
	EF1 float64

	// EF3PRP is direct N2O-N from excreta deposited on pasture, range and paddock.
	EF3PRP float64

	// FracGASF and FracGASM are the shares of fertiliser and organic N volatilised.
	FracGASF float64
	FracGASM float64

	// EF4 is N2O-N per kg of volatilised N redeposited.
	EF4 float64

	// FracLeach is the share of applied N lost through leaching and runoff.
	FracLeach float64

	// EF5 is N2O-N per kg of leached N.
	EF5 float64
}

// DefaultFactors returns the tier 1 factors.
func DefaultFactors() Factors {
	return Factors{
		EF1:       0.01,
		EF3PRP:    0.02,
		FracGASF:  0.10,
		FracGASM:  0.20,
		EF4:       0.01,
		FracLeach: 0.30,
		EF5:       0.0075,
	}
}

// DefaultGWPN2O is the 100-year global warming potential of nitrous oxide.
const DefaultGWPN2O = 273.0

const n2oPerN2ON = 44.0 / 28.0

// Ensure Model implements the interface.
var _ driven.SourceModel = (*Model)(nil)

// Model computes soil N2O in kg CO2eq.
type Model struct {
	factors Factors
	gwp     float64
}

// Option configures the model.
type Option func(*Model)

// WithFactors replaces the emission factors.
func WithFactors(f Factors) Option {
	return func(m *Model) {
		m.factors = f
	}
}

// WithGWP sets the nitrous oxide warming potential.
func WithGWP(gwp float64) Option {
	return func(m *Model) {
		if gwp > 0 {
			m.gwp = gwp
		}
	}
}

// New creates a soil model with the given options.
func New(opts ...Option) *Model {
	m := &Model{factors: DefaultFactors(), gwp: DefaultGWPN2O}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source name.
func (m *Model) Name() string {
	return domain.SourceSoil
}

// Compute reports direct and indirect N2O under co2eq_kg with a breakdown.
func (m *Model) Compute(activity domain.Activity, boundary domain.Boundary) (domain.SourceResult, error) {
	if !boundary.Includes(domain.SourceSoil) {
		return domain.ExcludedResult(domain.SourceSoil), nil
	}

	a := activity.Soil
	if a == nil {
		return domain.SourceResult{}, fmt.Errorf("%w: soil activity missing", domain.ErrInvalidInput)
	}
	for field, v := range map[string]float64{
		"n_fertilizer_kg":      a.NFertilizerKg,
		"n_manure_applied_kg":  a.NManureAppliedKg,
		"n_excreta_pasture_kg": a.NExcretaPastureKg,
	} {
		if err := domain.CheckQuantity(field, v); err != nil {
			return domain.SourceResult{}, err
		}
	}

	f := m.factors
	organicN := a.NManureAppliedKg + a.NExcretaPastureKg
	totalN := a.NFertilizerKg + organicN

	directN := (a.NFertilizerKg+a.NManureAppliedKg)*f.EF1 + a.NExcretaPastureKg*f.EF3PRP
	volatilisedN := (a.NFertilizerKg*f.FracGASF + organicN*f.FracGASM) * f.EF4
	leachedN := totalN * f.FracLeach * f.EF5

	direct := directN * n2oPerN2ON * m.gwp
	volatilisation := volatilisedN * n2oPerN2ON * m.gwp
	leaching := leachedN * n2oPerN2ON * m.gwp

	return domain.SourceResult{
		Source:   domain.SourceSoil,
		Category: "soils",
		Fields: map[string]*float64{
			"co2eq_kg": domain.Float(direct + volatilisation + leaching),
		},
		Breakdowns: map[string]domain.Breakdown{
			"breakdown": {Values: map[string]any{
				"direct":                  direct,
				"indirect_volatilisation": volatilisation,
				"indirect_leaching":       leaching,
			}},
		},
		Extra: map[string]any{
			"n2o_kg": (directN + volatilisedN + leachedN) * n2oPerN2ON,
		},
	}, nil
}
