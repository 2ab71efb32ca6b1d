// Package energy estimates combustion and grid-electricity emissions from on-farm energy use.
package energy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// Fuel emission factors, kg CO2eq per unit.
const (
	DefaultDieselPerL      = 2.67
	DefaultPetrolPerL      = 2.31
	DefaultLPGPerKg        = 2.98
	DefaultNaturalGasPerM3 = 2.02
)

// DefaultCountry selects the world-average grid factor.
const DefaultCountry = "default"

// gridFactors holds electricity factors, kg CO2eq per kWh, by ISO country code.
var gridFactors = map[string]float64{
	DefaultCountry: 0.475,
	"au":           0.68,
	"de":           0.38,
	"dk":           0.15,
	"fr":           0.056,
	"gb":           0.207,
	"ie":           0.33,
	"nl":           0.33,
	"nz":           0.10,
	"us":           0.386,
}

// Countries returns the country codes with a grid factor, sorted.
func Countries() []string {
	out := make([]string, 0, len(gridFactors))
	for c := range gridFactors {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Ensure Model implements the interface.
var _ driven.SourceModel = (*Model)(nil)

// Model computes energy emissions in kg CO2eq.
type Model struct {
	diesel     float64
	petrol     float64
	lpg        float64
	naturalGas float64
	grid       map[string]float64
}

// Option configures the model.
type Option func(*Model)

// WithFuelFactors overrides the fuel factors. Non-positive values keep the default.
func WithFuelFactors(diesel, petrol, lpg, naturalGas float64) Option {
	return func(m *Model) {
		for _, f := range []struct {
			dst *float64
			v   float64
		}{{&m.diesel, diesel}, {&m.petrol, petrol}, {&m.lpg, lpg}, {&m.naturalGas, naturalGas}} {
			if f.v > 0 {
				*f.dst = f.v
			}
		}
	}
}

// WithGridFactor sets or overrides the electricity factor for a country.
func WithGridFactor(country string, kgPerKWh float64) Option {
	return func(m *Model) {
		if kgPerKWh >= 0 {
			m.grid[strings.ToLower(country)] = kgPerKWh
		}
	}
}

// New creates an energy model with the given options.
func New(opts ...Option) *Model {
	m := &Model{
		diesel:     DefaultDieselPerL,
		petrol:     DefaultPetrolPerL,
		lpg:        DefaultLPGPerKg,
		naturalGas: DefaultNaturalGasPerM3,
		grid:       make(map[string]float64, len(gridFactors)),
	}
	for c, f := range gridFactors {
		m.grid[c] = f
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source name.
func (m *Model) Name() string {
	return domain.SourceEnergy
}

// Compute reports the total under co2eq_kg with a by_source breakdown.
// Unknown countries fail with domain.ErrInvalidInput.
func (m *Model) Compute(activity domain.Activity, boundary domain.Boundary) (domain.SourceResult, error) {
	if !boundary.Includes(domain.SourceEnergy) {
		return domain.ExcludedResult(domain.SourceEnergy), nil
	}

	a := activity.Energy
	if a == nil {
		return domain.SourceResult{}, fmt.Errorf("%w: energy activity missing", domain.ErrInvalidInput)
	}

	country := strings.ToLower(strings.TrimSpace(a.Country))
	if country == "" {
		country = DefaultCountry
	}
	grid, ok := m.grid[country]
	if !ok {
		return domain.SourceResult{}, fmt.Errorf("%w: no grid factor for country %q", domain.ErrInvalidInput, a.Country)
	}

	lines := []struct {
		name   string
		amount float64
		factor float64
	}{
		{"diesel", a.DieselL, m.diesel},
		{"petrol", a.PetrolL, m.petrol},
		{"lpg", a.LPGKg, m.lpg},
		{"natural_gas", a.NaturalGasM3, m.naturalGas},
		{"electricity", a.ElectricityKWh, grid},
	}

	bySource := make(map[string]any, len(lines))
	var total float64
	for _, l := range lines {
		if err := domain.CheckQuantity(l.name, l.amount); err != nil {
			return domain.SourceResult{}, err
		}
		v := l.amount * l.factor
		bySource[l.name] = v
		total += v
	}

	return domain.SourceResult{
		Source:   domain.SourceEnergy,
		Category: "energy",
		Fields: map[string]*float64{
			"co2eq_kg": domain.Float(total),
		},
		Breakdowns: map[string]domain.Breakdown{
			"by_source": {Values: bySource},
		},
		Extra: map[string]any{"country": country, "grid_kg_per_kwh": grid},
	}, nil
}
