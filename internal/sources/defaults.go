package sources

import (
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/sources/energy"
	"github.com/custodia-labs/dairyghg/internal/sources/enteric"
	"github.com/custodia-labs/dairyghg/internal/sources/inputs"
	"github.com/custodia-labs/dairyghg/internal/sources/manure"
	"github.com/custodia-labs/dairyghg/internal/sources/soil"
)

// Shared config keys.
const (
	KeyGWPCH4 = "gwp_ch4"
	KeyGWPN2O = "gwp_n2o"
)

// RegisterDefaults registers all built-in models with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(domain.SourceEnteric, buildEnteric)
	r.Register(domain.SourceManure, buildManure)
	r.Register(domain.SourceSoil, buildSoil)
	r.Register(domain.SourceEnergy, buildEnergy)
	r.Register(domain.SourceInputs, buildInputs)
}

// DefaultModels builds every built-in model with the given per-source config
// and warming potentials. GWPs are written into each config unless the
// config already sets them.
func DefaultModels(configs map[string]map[string]any, factors domain.FactorSettings) (*Models, error) {
	r := NewRegistry()
	RegisterDefaults(r)

	merged := make(map[string]map[string]any, len(r.Names()))
	for _, name := range r.Names() {
		cfg := map[string]any{
			KeyGWPCH4: factors.GWPCH4,
			KeyGWPN2O: factors.GWPN2O,
		}
		for k, v := range configs[name] {
			cfg[k] = v
		}
		merged[name] = cfg
	}
	return r.BuildAll(merged)
}

// Ensure Factory implements the interface.
var _ driven.SourceModelFactory = (*Factory)(nil)

// Factory builds the default models with fixed per-source overrides.
type Factory struct {
	configs map[string]map[string]any
}

// NewFactory creates a factory over per-source config overrides,
// typically the models.<source>.<factor> settings.
func NewFactory(configs map[string]map[string]any) *Factory {
	return &Factory{configs: configs}
}

// Models builds every default model for the given warming potentials.
func (f *Factory) Models(factors domain.FactorSettings) (driven.SourceModelRegistry, error) {
	models, err := DefaultModels(f.configs, factors)
	if err != nil {
		return nil, err
	}
	return models, nil
}

// buildEnteric supports ef_<cohort> (kg CH4/head/yr) and gwp_ch4.
func buildEnteric(cfg map[string]any) (driven.SourceModel, error) {
	var opts []enteric.Option
	for _, cohort := range []string{
		domain.CohortMilking, domain.CohortDry, domain.CohortHeifers, domain.CohortCalves, domain.CohortBulls,
	} {
		if ef, ok := getFloatFromConfig(cfg, "ef_"+cohort); ok {
			opts = append(opts, enteric.WithFactor(cohort, ef))
		}
	}
	if gwp, ok := getFloatFromConfig(cfg, KeyGWPCH4); ok {
		opts = append(opts, enteric.WithGWP(gwp))
	}
	return enteric.New(opts...), nil
}

// buildManure supports b0, vs_rate, n_excretion, gwp_ch4 and gwp_n2o.
func buildManure(cfg map[string]any) (driven.SourceModel, error) {
	var opts []manure.Option
	if v, ok := getFloatFromConfig(cfg, "b0"); ok {
		opts = append(opts, manure.WithB0(v))
	}
	if v, ok := getFloatFromConfig(cfg, "vs_rate"); ok {
		opts = append(opts, manure.WithVSRate(v))
	}
	if v, ok := getFloatFromConfig(cfg, "n_excretion"); ok {
		opts = append(opts, manure.WithNExcretion(v))
	}
	ch4, _ := getFloatFromConfig(cfg, KeyGWPCH4)
	n2o, _ := getFloatFromConfig(cfg, KeyGWPN2O)
	opts = append(opts, manure.WithGWP(ch4, n2o))
	return manure.New(opts...), nil
}

// buildSoil supports ef1, ef3_prp, frac_gasf, frac_gasm, ef4, frac_leach, ef5 and gwp_n2o.
func buildSoil(cfg map[string]any) (driven.SourceModel, error) {
	f := soil.DefaultFactors()
	for key, dst := range map[string]*float64{
		"ef1":        &f.EF1,
		"ef3_prp":    &f.EF3PRP,
		"frac_gasf":  &f.FracGASF,
		"frac_gasm":  &f.FracGASM,
		"ef4":        &f.EF4,
		"frac_leach": &f.FracLeach,
		"ef5":        &f.EF5,
	} {
		if v, ok := getFloatFromConfig(cfg, key); ok && v >= 0 {
			*dst = v
		}
	}
	opts := []soil.Option{soil.WithFactors(f)}
	if gwp, ok := getFloatFromConfig(cfg, KeyGWPN2O); ok {
		opts = append(opts, soil.WithGWP(gwp))
	}
	return soil.New(opts...), nil
}

// buildEnergy supports diesel, petrol, lpg, natural_gas and grid_<country>.
func buildEnergy(cfg map[string]any) (driven.SourceModel, error) {
	diesel, _ := getFloatFromConfig(cfg, "diesel")
	petrol, _ := getFloatFromConfig(cfg, "petrol")
	lpg, _ := getFloatFromConfig(cfg, "lpg")
	gas, _ := getFloatFromConfig(cfg, "natural_gas")
	opts := []energy.Option{energy.WithFuelFactors(diesel, petrol, lpg, gas)}

	for key := range cfg {
		country, ok := strings.CutPrefix(key, "grid_")
		if !ok || country == "" {
			continue
		}
		if v, ok := getFloatFromConfig(cfg, key); ok {
			opts = append(opts, energy.WithGridFactor(country, v))
		}
	}
	return energy.New(opts...), nil
}

// buildInputs supports one key per input name (concentrate, plastic, ...).
func buildInputs(cfg map[string]any) (driven.SourceModel, error) {
	var opts []inputs.Option
	for name := range inputs.DefaultFactors() {
		if v, ok := getFloatFromConfig(cfg, name); ok {
			opts = append(opts, inputs.WithFactor(name, v))
		}
	}
	return inputs.New(opts...), nil
}

// getFloatFromConfig safely extracts a number from a generic config map.
// Handles int, int64 and float64 types that may come from TOML/JSON parsing.
func getFloatFromConfig(cfg map[string]any, key string) (float64, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}
	f, ok := domain.AsFloat(val)
	if !ok || !domain.IsFinite(f) {
		return 0, false
	}
	return f, true
}
