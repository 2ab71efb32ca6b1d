package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

func contribution(source string, amount float64) domain.NormalizedContribution {
	return domain.NormalizedContribution{Source: source, Amount: amount, Method: domain.MethodDirect}
}

func TestAggregate_EndToEndExample(t *testing.T) {
	contributions := []domain.NormalizedContribution{
		contribution("enteric", 312800),
		contribution("manure", 89880),
		contribution("soil", 39092.62),
		contribution("energy", 5740),
		contribution("inputs", 4000),
	}

	agg, err := Aggregate(contributions)

	require.NoError(t, err)
	assert.InDelta(t, 451512.62, agg.Total, 1e-6)
	assert.Len(t, agg.Breakdown, 5)
	assert.Equal(t, 5, agg.SourceCount)
	assert.Equal(t, 5, agg.ContributionCount)
}

func TestAggregate_DuplicateNamesSum(t *testing.T) {
	agg, err := Aggregate([]domain.NormalizedContribution{
		contribution("enteric", 1200.5),
		contribution("enteric", 300.25),
		contribution("manure", 10),
	})

	require.NoError(t, err)
	want := map[string]float64{"enteric": 1500.75, "manure": 10}
	if diff := cmp.Diff(want, agg.Breakdown, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, agg.SourceCount)
	assert.Equal(t, 3, agg.ContributionCount)
}

func TestAggregate_TotalEqualsBreakdownSum(t *testing.T) {
	agg, err := Aggregate([]domain.NormalizedContribution{
		contribution("a", 0.1), contribution("b", 0.2), contribution("c", 0.3), contribution("a", 0.7),
	})
	require.NoError(t, err)

	var sum float64
	for _, name := range agg.Sources() {
		sum += agg.Breakdown[name]
	}
	assert.Equal(t, sum, agg.Total)
}

func TestAggregate_Commutative(t *testing.T) {
	base := []domain.NormalizedContribution{
		contribution("enteric", 0.1),
		contribution("enteric", 1e10),
		contribution("enteric", 0.2),
		contribution("manure", 0.3),
		contribution("soil", 1e-7),
		contribution("energy", 123.456),
		contribution("inputs", 0),
	}
	want, err := Aggregate(base)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := append([]domain.NormalizedContribution(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Aggregate(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAggregate_ZeroContributionsKeepNames(t *testing.T) {
	agg, err := Aggregate([]domain.NormalizedContribution{
		contribution("enteric", 100),
		domain.ZeroContribution("soil", true),
	})

	require.NoError(t, err)
	assert.Contains(t, agg.Breakdown, "soil")
	assert.Zero(t, agg.Breakdown["soil"])
	assert.Equal(t, 100.0, agg.Total)
}

func TestAggregate_Empty(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, domain.ErrNoContributions)

	_, err = Aggregate([]domain.NormalizedContribution{})
	assert.ErrorIs(t, err, domain.ErrNoContributions)
}

func TestAggregate_RejectsInvalidContributions(t *testing.T) {
	tests := []domain.NormalizedContribution{
		{Source: "", Amount: 1},
		{Source: "soil", Amount: -1},
		{Source: "soil", Amount: math.NaN()},
		{Source: "soil", Amount: math.Inf(1)},
	}
	for _, c := range tests {
		_, err := Aggregate([]domain.NormalizedContribution{c})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAggregationService_AggregateResults(t *testing.T) {
	svc := NewAggregationService(nil)
	results := []domain.SourceResult{
		domain.ParseSourceResult(map[string]any{"source": "enteric", "co2eq_kg": 200.0}),
		domain.ParseSourceResult(map[string]any{"total": 50.0}),
		domain.ParseSourceResult(map[string]any{"breakdown": map[string]any{"a": 1.0, "b": 2.0}}),
		domain.ExcludedResult("soil"),
	}

	agg, contributions, err := svc.AggregateResults(results, []string{"", "manure"})

	require.NoError(t, err)
	require.Len(t, contributions, 4)
	assert.Equal(t, "enteric", contributions[0].Source)
	assert.Equal(t, "manure", contributions[1].Source)
	assert.Equal(t, "source_3", contributions[2].Source)
	assert.Equal(t, 253.0, agg.Total)
	assert.Equal(t, 4, agg.SourceCount)
}

func TestAggregationService_PropagatesErrors(t *testing.T) {
	svc := NewAggregationService(NewResultNormalizer())

	_, _, err := svc.AggregateResults(nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoContributions)

	_, _, err = svc.AggregateResults([]domain.SourceResult{{Source: "soil"}}, nil)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
