// Package manure estimates methane and nitrous oxide from manure management.
//
// Methane follows the volatile solids method: VS excreted per day, scaled by
// the maximum methane capacity B0 and a methane conversion factor that depends
// on the management system and climate. Excreta deposited on pasture uses the
// pasture conversion factor regardless of the housed system. Direct nitrous
// oxide is computed on housed nitrogen only; pasture deposition is attributed
// to soils.
package manure

import (
	"fmt"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// Defaults.
const (
	// DefaultB0 is the maximum methane producing capacity, m3 CH4 per kg VS.
	DefaultB0 = 0.24

	// DefaultVSRate is volatile solids excretion, kg VS per 1000 kg animal mass per day.
	DefaultVSRate = 8.4

	// DefaultNExcretion is nitrogen excreted, kg N per head per year.
	DefaultNExcretion = 100.0

	DefaultGWPCH4 = 27.2
	DefaultGWPN2O = 273.0
)

const (
	// ch4DensityKgPerM3 converts methane volume to mass.
	ch4DensityKgPerM3 = 0.67

	// n2oPerN2ON is the molecular weight ratio of N2O to N2O-N.
	n2oPerN2ON = 44.0 / 28.0

	daysPerYear = 365.0
)

// mcf holds methane conversion factors by system and climate.
var mcf = map[domain.ManureSystem]map[domain.Climate]float64{
	domain.ManurePasture:           {domain.ClimateCold: 0.0047, domain.ClimateTemperate: 0.0047, domain.ClimateWarm: 0.0047},
	domain.ManureSolidStorage:      {domain.ClimateCold: 0.02, domain.ClimateTemperate: 0.04, domain.ClimateWarm: 0.05},
	domain.ManureLiquidStorage:     {domain.ClimateCold: 0.21, domain.ClimateTemperate: 0.35, domain.ClimateWarm: 0.53},
	domain.ManureDailySpread:       {domain.ClimateCold: 0.001, domain.ClimateTemperate: 0.005, domain.ClimateWarm: 0.01},
	domain.ManureAnaerobicDigester: {domain.ClimateCold: 0.01, domain.ClimateTemperate: 0.01, domain.ClimateWarm: 0.01},
}

// ef3 holds direct N2O-N emission factors for housed manure, kg N2O-N per kg N.
var ef3 = map[domain.ManureSystem]float64{
	domain.ManurePasture:           0,
	domain.ManureSolidStorage:      0.01,
	domain.ManureLiquidStorage:     0.005,
	domain.ManureDailySpread:       0,
	domain.ManureAnaerobicDigester: 0.0006,
}

// Ensure Model implements the interface.
var _ driven.SourceModel = (*Model)(nil)

// Model computes manure emissions in kg CO2eq.
type Model struct {
	b0         float64
	vsRate     float64
	nExcretion float64
	gwpCH4     float64
	gwpN2O     float64
}

// Option configures the model.
type Option func(*Model)

// WithB0 sets the maximum methane producing capacity.
func WithB0(b0 float64) Option {
	return func(m *Model) {
		if b0 > 0 {
			m.b0 = b0
		}
	}
}

// WithVSRate sets the tier 1 volatile solids rate per 1000 kg mass per day.
func WithVSRate(rate float64) Option {
	return func(m *Model) {
		if rate > 0 {
			m.vsRate = rate
		}
	}
}

// WithNExcretion sets annual nitrogen excretion per head.
func WithNExcretion(kgN float64) Option {
	return func(m *Model) {
		if kgN >= 0 {
			m.nExcretion = kgN
		}
	}
}

// WithGWP sets the methane and nitrous oxide warming potentials.
func WithGWP(ch4, n2o float64) Option {
	return func(m *Model) {
		if ch4 > 0 {
			m.gwpCH4 = ch4
		}
		if n2o > 0 {
			m.gwpN2O = n2o
		}
	}
}

// New creates a manure model with the given options.
func New(opts ...Option) *Model {
	m := &Model{
		b0:         DefaultB0,
		vsRate:     DefaultVSRate,
		nExcretion: DefaultNExcretion,
		gwpCH4:     DefaultGWPCH4,
		gwpN2O:     DefaultGWPN2O,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source name.
func (m *Model) Name() string {
	return domain.SourceManure
}

// Compute reports the total under total_co2eq_kg with a by_gas breakdown.
func (m *Model) Compute(activity domain.Activity, boundary domain.Boundary) (domain.SourceResult, error) {
	if !boundary.Includes(domain.SourceManure) {
		return domain.ExcludedResult(domain.SourceManure), nil
	}

	a := activity.Manure
	if a == nil {
		return domain.SourceResult{}, fmt.Errorf("%w: manure activity missing", domain.ErrInvalidInput)
	}
	system, climate, err := validate(*a)
	if err != nil {
		return domain.SourceResult{}, err
	}

	vsPerDay := a.VSKgDay
	if a.Tier != domain.Tier2 || vsPerDay == 0 {
		vsPerDay = m.vsRate * a.BodyWeightKg / 1000
	}

	pasture := a.PastureFraction
	conversion := pasture*mcf[domain.ManurePasture][climate] + (1-pasture)*mcf[system][climate]
	ch4 := a.Animals * vsPerDay * daysPerYear * m.b0 * ch4DensityKgPerM3 * conversion

	housedN := a.Animals * m.nExcretion * (1 - pasture)
	n2o := housedN * ef3[system] * n2oPerN2ON

	ch4eq := ch4 * m.gwpCH4
	n2oeq := n2o * m.gwpN2O

	return domain.SourceResult{
		Source: domain.SourceManure,
		Type:   string(system),
		Fields: map[string]*float64{
			"total_co2eq_kg": domain.Float(ch4eq + n2oeq),
		},
		Breakdowns: map[string]domain.Breakdown{
			"by_gas": {Values: map[string]any{"ch4": ch4eq, "n2o": n2oeq}},
		},
		Extra: map[string]any{
			"ch4_kg":    ch4,
			"n2o_kg":    n2o,
			"vs_kg_day": vsPerDay,
			"mcf":       conversion,
			"climate":   string(climate),
		},
	}, nil
}

func validate(a domain.ManureActivity) (domain.ManureSystem, domain.Climate, error) {
	checks := []struct {
		field string
		v     float64
	}{
		{"animals", a.Animals},
		{"body_weight_kg", a.BodyWeightKg},
		{"vs_kg_day", a.VSKgDay},
		{"pasture_fraction", a.PastureFraction},
	}
	for _, c := range checks {
		if err := domain.CheckQuantity(c.field, c.v); err != nil {
			return "", "", err
		}
	}
	if a.PastureFraction > 1 {
		return "", "", fmt.Errorf("%w: pasture_fraction %v above 1", domain.ErrInvalidInput, a.PastureFraction)
	}

	system := domain.ManureSystem(a.System)
	if !system.IsValid() {
		return "", "", fmt.Errorf("%w: manure system %q", domain.ErrInvalidInput, a.System)
	}
	climate := domain.Climate(a.Climate)
	if !climate.IsValid() {
		return "", "", fmt.Errorf("%w: climate %q", domain.ErrInvalidInput, a.Climate)
	}
	return system, climate, nil
}
