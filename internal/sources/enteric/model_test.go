package enteric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

func cows(n float64) domain.Activity {
	return domain.Activity{Enteric: &domain.EntericActivity{
		Cohort:       domain.CohortMilking,
		Animals:      n,
		BodyWeightKg: 550,
		Tier:         domain.Tier1,
	}}
}

func TestModel_Name(t *testing.T) {
	assert.Equal(t, "enteric", New().Name())
}

func TestCompute_TierOne(t *testing.T) {
	result, err := New().Compute(cows(100), domain.FullBoundary())

	require.NoError(t, err)
	total, ok := result.Total("co2eq_kg")
	require.True(t, ok)
	assert.InDelta(t, 100*DefaultEFMilkingCows*DefaultGWPCH4, total, 1e-9)
	assert.Equal(t, domain.SourceEnteric, result.Source)
	assert.False(t, result.Excluded)
}

func TestCompute_TierTwo(t *testing.T) {
	activity := cows(10)
	activity.Enteric.Tier = domain.Tier2
	activity.Enteric.DMIKgDay = 20
	activity.Enteric.YmPercent = 6.5

	result, err := New(WithGWP(28)).Compute(activity, domain.FullBoundary())

	require.NoError(t, err)
	perHead := 20 * 18.45 * 365 * 0.065 / 55.65
	total, _ := result.Total("co2eq_kg")
	assert.InDelta(t, perHead*10*28, total, 1e-9)
	assert.Equal(t, domain.Tier2, result.Extra["tier"])
}

func TestCompute_CohortFactors(t *testing.T) {
	m := New(WithFactor(domain.CohortHeifers, 60))
	activity := domain.Activity{Enteric: &domain.EntericActivity{Cohort: domain.CohortHeifers, Animals: 2, Tier: domain.Tier1}}

	result, err := m.Compute(activity, domain.FullBoundary())

	require.NoError(t, err)
	total, _ := result.Total("co2eq_kg")
	assert.InDelta(t, 2*60*DefaultGWPCH4, total, 1e-9)
}

func TestCompute_Excluded(t *testing.T) {
	boundary, err := domain.NewBoundary(domain.ScopePartial, []string{"soil"})
	require.NoError(t, err)

	result, err := New().Compute(cows(100), boundary)

	require.NoError(t, err)
	assert.True(t, result.Excluded)
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		activity domain.Activity
	}{
		{"missing section", domain.Activity{}},
		{"negative animals", cows(-1)},
		{"nan animals", cows(math.NaN())},
		{"unknown cohort", domain.Activity{Enteric: &domain.EntericActivity{Cohort: "goats", Animals: 1, Tier: 1}}},
		{"bad tier", domain.Activity{Enteric: &domain.EntericActivity{Cohort: domain.CohortBulls, Animals: 1, Tier: 4}}},
		{"ym above 100", domain.Activity{Enteric: &domain.EntericActivity{Cohort: domain.CohortBulls, Animals: 1, Tier: 2, DMIKgDay: 1, YmPercent: 120}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Compute(tt.activity, domain.FullBoundary())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
