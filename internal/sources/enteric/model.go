// Package enteric estimates methane from enteric fermentation, one animal cohort per call.
package enteric

import (
	"fmt"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// Tier 1 emission factors, kg CH4 per head per year.
const (
	DefaultEFMilkingCows = 117.0
	DefaultEFDryCows     = 90.0
	DefaultEFHeifers     = 57.0
	DefaultEFCalves      = 30.0
	DefaultEFBulls       = 75.0
)

// DefaultGWPCH4 is the 100-year global warming potential of methane.
const DefaultGWPCH4 = 27.2

const (
	// grossEnergyMJPerKgDM is the gross energy density of feed dry matter.
	grossEnergyMJPerKgDM = 18.45

	// energyMJPerKgCH4 is the energy content of methane.
	energyMJPerKgCH4 = 55.65

	daysPerYear = 365.0
)

// Ensure Model implements the interface.
var _ driven.SourceModel = (*Model)(nil)

// Model computes enteric methane in kg CO2eq.
type Model struct {
	factors map[string]float64
	gwp     float64
}

// Option configures the model.
type Option func(*Model)

// WithFactor overrides the tier 1 factor for a cohort. Negative values are ignored.
func WithFactor(cohort string, kgCH4PerHead float64) Option {
	return func(m *Model) {
		if kgCH4PerHead >= 0 && domain.IsFinite(kgCH4PerHead) {
			m.factors[cohort] = kgCH4PerHead
		}
	}
}

// WithGWP sets the methane global warming potential.
func WithGWP(gwp float64) Option {
	return func(m *Model) {
		if gwp > 0 {
			m.gwp = gwp
		}
	}
}

// New creates an enteric model with the given options.
func New(opts ...Option) *Model {
	m := &Model{
		factors: map[string]float64{
			domain.CohortMilking: DefaultEFMilkingCows,
			domain.CohortDry:     DefaultEFDryCows,
			domain.CohortHeifers: DefaultEFHeifers,
			domain.CohortCalves:  DefaultEFCalves,
			domain.CohortBulls:   DefaultEFBulls,
		},
		gwp: DefaultGWPCH4,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source name.
func (m *Model) Name() string {
	return domain.SourceEnteric
}

// Compute returns the cohort's emissions under co2eq_kg.
// Tier 2 derives methane from dry matter intake and the conversion
// factor Ym; tier 1 multiplies head count by the cohort factor.
func (m *Model) Compute(activity domain.Activity, boundary domain.Boundary) (domain.SourceResult, error) {
	if !boundary.Includes(domain.SourceEnteric) {
		return domain.ExcludedResult(domain.SourceEnteric), nil
	}

	a := activity.Enteric
	if a == nil {
		return domain.SourceResult{}, fmt.Errorf("%w: enteric activity missing", domain.ErrInvalidInput)
	}
	if err := validate(*a); err != nil {
		return domain.SourceResult{}, err
	}

	ef, ok := m.factors[a.Cohort]
	if !ok {
		return domain.SourceResult{}, fmt.Errorf("%w: unknown cohort %q", domain.ErrInvalidInput, a.Cohort)
	}

	tier := domain.Tier1
	if a.Tier == domain.Tier2 && a.DMIKgDay > 0 {
		tier = domain.Tier2
		ef = a.DMIKgDay * grossEnergyMJPerKgDM * daysPerYear * (a.YmPercent / 100) / energyMJPerKgCH4
	}

	ch4 := ef * a.Animals
	return domain.SourceResult{
		Source:   domain.SourceEnteric,
		Category: "livestock",
		Fields: map[string]*float64{
			"co2eq_kg": domain.Float(ch4 * m.gwp),
		},
		Extra: map[string]any{
			"cohort":          a.Cohort,
			"tier":            tier,
			"ch4_kg_per_head": ef,
			"ch4_kg":          ch4,
		},
	}, nil
}

func validate(a domain.EntericActivity) error {
	checks := []struct {
		field string
		v     float64
	}{
		{"animals", a.Animals},
		{"body_weight_kg", a.BodyWeightKg},
		{"milk_yield_kg_day", a.MilkYieldKgDay},
		{"dmi_kg_day", a.DMIKgDay},
		{"ym_percent", a.YmPercent},
	}
	for _, c := range checks {
		if err := domain.CheckQuantity(c.field, c.v); err != nil {
			return err
		}
	}
	if a.YmPercent > 100 {
		return fmt.Errorf("%w: ym_percent %v above 100", domain.ErrInvalidInput, a.YmPercent)
	}
	if a.Tier != domain.Tier1 && a.Tier != domain.Tier2 {
		return fmt.Errorf("%w: tier %d", domain.ErrInvalidInput, a.Tier)
	}
	return nil
}
