package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

func testDefaults() domain.DefaultSettings {
	return domain.DefaultAssessmentSettings().Defaults
}

func minimalRecord() domain.FarmRecord {
	return domain.FarmRecord{
		FarmID:      "F-1",
		MilkLitres:  domain.Float(730000),
		CowsMilking: domain.Float(100),
	}
}

func TestResolve_MinimalRecordUsesDefaults(t *testing.T) {
	r := NewResolver(testDefaults())

	farm, err := r.Resolve(minimalRecord())

	require.NoError(t, err)
	assert.Equal(t, "F-1", farm.FarmID)
	require.Len(t, farm.Enteric, 5)

	milking := farm.Enteric[0]
	assert.Equal(t, domain.CohortMilking, milking.Cohort)
	assert.Equal(t, 100.0, milking.Animals)
	assert.Equal(t, defaultBodyWeightCowsKg, milking.BodyWeightKg)
	assert.Equal(t, domain.Tier1, milking.Tier)
	assert.InDelta(t, 730000*milkDensityKgPerL/100/365, milking.MilkYieldKgDay, 1e-9)

	for _, cohort := range farm.Enteric[1:] {
		assert.True(t, cohort.IsZero(), cohort.Cohort)
	}

	assert.Equal(t, "temperate", farm.Manure.Climate)
	assert.Equal(t, "pasture", farm.Manure.System)
	assert.Equal(t, 1.0, farm.Manure.PastureFraction)
	assert.Equal(t, 100.0, farm.Manure.Animals)

	// All excreta on pasture: nothing housed to apply.
	assert.Equal(t, 10000.0, farm.Soil.NExcretaPastureKg)
	assert.Zero(t, farm.Soil.NManureAppliedKg)

	assert.Equal(t, "default", farm.Energy.Country)
	assert.Equal(t, "global", farm.Inputs.Region)
	assert.Equal(t, defaultFatPercent, farm.Normalization.FatPercent)
	assert.Equal(t, defaultProteinPercent, farm.Normalization.ProteinPercent)

	assert.Contains(t, farm.Defaulted, "tier")
	assert.Contains(t, farm.Defaulted, "climate")
	assert.Contains(t, farm.Defaulted, "body_weight_cows_kg")
}

func TestResolve_DryCowWeightFallsBackToCowWeight(t *testing.T) {
	rec := minimalRecord()
	rec.CowsDry = domain.Float(20)
	rec.BodyWeightCowsKg = domain.Float(620)

	farm, err := NewResolver(testDefaults()).Resolve(rec)

	require.NoError(t, err)
	assert.Equal(t, 620.0, farm.Enteric[1].BodyWeightKg)
	assert.Equal(t, 120.0, farm.Manure.Animals)
}

func TestResolve_TierTwoWithoutIntakeFallsBack(t *testing.T) {
	rec := minimalRecord()
	rec.Tier = domain.Int(2)

	farm, err := NewResolver(testDefaults()).Resolve(rec)

	require.NoError(t, err)
	assert.Equal(t, domain.Tier1, farm.Enteric[0].Tier)
	assert.Equal(t, domain.Tier1, farm.Manure.Tier)
	assert.Contains(t, farm.Defaulted, "dmi_kg_day")
	assert.Contains(t, farm.Defaulted, "vs_kg_day")
}

func TestResolve_TierTwoWithIntake(t *testing.T) {
	rec := minimalRecord()
	rec.Tier = domain.Int(2)
	rec.DMIKgDay = domain.Float(19)
	rec.VSKgDay = domain.Float(5.1)

	farm, err := NewResolver(testDefaults()).Resolve(rec)

	require.NoError(t, err)
	assert.Equal(t, domain.Tier2, farm.Enteric[0].Tier)
	assert.Equal(t, 19.0, farm.Enteric[0].DMIKgDay)
	assert.Equal(t, defaultYmPercent, farm.Enteric[0].YmPercent)
	assert.Equal(t, domain.Tier2, farm.Manure.Tier)
	assert.Equal(t, 5.1, farm.Manure.VSKgDay)
}

func TestResolve_HousedSystemAppliesManureN(t *testing.T) {
	rec := minimalRecord()
	rec.ManureSystem = domain.String("Liquid_Storage")
	rec.NFertilizerKg = domain.Float(5000)

	farm, err := NewResolver(testDefaults()).Resolve(rec)

	require.NoError(t, err)
	assert.Equal(t, "liquid_storage", farm.Manure.System)
	assert.Zero(t, farm.Manure.PastureFraction)
	assert.InDelta(t, 10000*manureNRetained, farm.Soil.NManureAppliedKg, 1e-9)
	assert.Equal(t, 5000.0, farm.Soil.NFertilizerKg)
	assert.Equal(t, 5000.0, farm.Inputs.NFertilizerKg)
}

func TestResolve_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.FarmRecord)
	}{
		{"negative diesel", func(r *domain.FarmRecord) { r.DieselL = domain.Float(-1) }},
		{"nan milk", func(r *domain.FarmRecord) { r.MilkLitres = domain.Float(math.NaN()) }},
		{"infinite heifers", func(r *domain.FarmRecord) { r.Heifers = domain.Float(math.Inf(1)) }},
		{"unknown tier", func(r *domain.FarmRecord) { r.Tier = domain.Int(3) }},
		{"unknown climate", func(r *domain.FarmRecord) { r.Climate = domain.String("arctic") }},
		{"unknown manure system", func(r *domain.FarmRecord) { r.ManureSystem = domain.String("pit") }},
		{"pasture fraction above one", func(r *domain.FarmRecord) { r.PastureFraction = domain.Float(1.5) }},
	}

	r := NewResolver(testDefaults())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := minimalRecord()
			tt.mutate(&rec)

			_, err := r.Resolve(rec)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestResolve_BlankCategoricalUsesDefault(t *testing.T) {
	rec := minimalRecord()
	rec.Country = domain.String("  ")

	farm, err := NewResolver(testDefaults()).Resolve(rec)

	require.NoError(t, err)
	assert.Equal(t, "default", farm.Energy.Country)
}

func TestResolve_RejectsPercentAboveHundred(t *testing.T) {
	rec := minimalRecord()
	rec.FatPercent = domain.Float(140)

	_, err := NewResolver(testDefaults()).Resolve(rec)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fat_percent")
}
