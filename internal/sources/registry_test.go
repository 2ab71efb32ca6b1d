package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/sources/enteric"
)

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("enteric", func(map[string]any) (driven.SourceModel, error) {
		return enteric.New(), nil
	})

	assert.True(t, r.Has("enteric"))
	assert.False(t, r.Has("soil"))

	m, err := r.Build("enteric", nil)
	require.NoError(t, err)
	assert.Equal(t, "enteric", m.Name())

	_, err = r.Build("soil", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_BuildAllRejectsMisnamedModel(t *testing.T) {
	r := NewRegistry()
	r.Register("manure", func(map[string]any) (driven.SourceModel, error) {
		return enteric.New(), nil
	})

	_, err := r.BuildAll(nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "manure")
}

func TestRegisterDefaults_CoversEverySource(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	assert.Equal(t, []string{"energy", "enteric", "inputs", "manure", "soil"}, r.Names())
}

func TestDefaultModels_AppliesFactorsAndOverrides(t *testing.T) {
	configs := map[string]map[string]any{
		"enteric": {"ef_milking_cows": int64(100)},
		"energy":  {"grid_xx": 1.0, "diesel": 3.0},
		"soil":    {KeyGWPN2O: 300.0},
	}

	models, err := DefaultModels(configs, domain.FactorSettings{GWPCH4: 30, GWPN2O: 265})
	require.NoError(t, err)
	assert.Equal(t, []string{"energy", "enteric", "inputs", "manure", "soil"}, models.Names())

	ent, ok := models.Get("enteric")
	require.True(t, ok)
	result, err := ent.Compute(domain.Activity{Enteric: &domain.EntericActivity{
		Cohort: domain.CohortMilking, Animals: 2, Tier: domain.Tier1,
	}}, domain.FullBoundary())
	require.NoError(t, err)
	total, _ := result.Total("co2eq_kg")
	assert.InDelta(t, 2*100*30, total, 1e-9)

	en, _ := models.Get("energy")
	result, err = en.Compute(domain.Activity{Energy: &domain.EnergyActivity{
		DieselL: 1, ElectricityKWh: 1, Country: "xx",
	}}, domain.FullBoundary())
	require.NoError(t, err)
	total, _ = result.Total("co2eq_kg")
	assert.InDelta(t, 4, total, 1e-9)

	// Per-source config wins over the global warming potential.
	sm, _ := models.Get("soil")
	result, err = sm.Compute(domain.Activity{Soil: &domain.SoilActivity{NFertilizerKg: 100}}, domain.FullBoundary())
	require.NoError(t, err)
	total, _ = result.Total("co2eq_kg")
	assert.InDelta(t, 1.325*44/28*300, total, 1e-9)

	_, ok = models.Get("unknown")
	assert.False(t, ok)
}

func TestGetFloatFromConfig(t *testing.T) {
	cfg := map[string]any{"a": 1, "b": int64(2), "c": 2.5, "d": "x"}

	v, ok := getFloatFromConfig(cfg, "a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, _ = getFloatFromConfig(cfg, "b")
	assert.Equal(t, 2.0, v)
	v, _ = getFloatFromConfig(cfg, "c")
	assert.Equal(t, 2.5, v)
	_, ok = getFloatFromConfig(cfg, "d")
	assert.False(t, ok)
	_, ok = getFloatFromConfig(nil, "a")
	assert.False(t, ok)
}

func TestFactory_Models(t *testing.T) {
	f := NewFactory(map[string]map[string]any{
		"enteric": {"ef_milking_cows": 50.0},
	})

	registry, err := f.Models(domain.FactorSettings{GWPCH4: 10, GWPN2O: 273})
	require.NoError(t, err)
	assert.Len(t, registry.Names(), 5)

	ent, ok := registry.Get("enteric")
	require.True(t, ok)
	result, err := ent.Compute(domain.Activity{Enteric: &domain.EntericActivity{
		Cohort: domain.CohortMilking, Animals: 1, Tier: domain.Tier1,
	}}, domain.FullBoundary())
	require.NoError(t, err)
	total, _ := result.Total("co2eq_kg")
	assert.InDelta(t, 500, total, 1e-9)
}
