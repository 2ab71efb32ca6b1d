package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

// Aggregate groups contributions by source, summing repeated names
// (for example several animal cohorts all reported as "enteric"), and sums
// the groups into the grand total. Amounts are summed in sorted order so the
// result does not depend on input order. It fails with
// domain.ErrNoContributions when contributions is empty.
func Aggregate(contributions []domain.NormalizedContribution) (domain.AggregatedTotal, error) {
	if len(contributions) == 0 {
		return domain.AggregatedTotal{}, domain.ErrNoContributions
	}

	groups := make(map[string][]float64)
	for _, c := range contributions {
		if c.Source == "" {
			return domain.AggregatedTotal{}, fmt.Errorf("%w: contribution without source name", domain.ErrInvalidInput)
		}
		if !domain.IsFinite(c.Amount) || c.Amount < 0 {
			return domain.AggregatedTotal{}, fmt.Errorf("%w: source %q amount %v", domain.ErrInvalidInput, c.Source, c.Amount)
		}
		groups[c.Source] = append(groups[c.Source], c.Amount)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	agg := domain.AggregatedTotal{
		Breakdown:         make(map[string]float64, len(names)),
		SourceCount:       len(names),
		ContributionCount: len(contributions),
	}
	for _, name := range names {
		amounts := groups[name]
		sort.Float64s(amounts)
		var sum float64
		for _, a := range amounts {
			sum += a
		}
		agg.Breakdown[name] = sum
		agg.Total += sum
	}

	return agg, nil
}

// Ensure AggregationService implements the interface.
var _ driving.Aggregator = (*AggregationService)(nil)

// AggregationService normalises and aggregates loosely shaped results
// supplied from outside the batch pipeline (for example over MCP).
type AggregationService struct {
	normalizer *ResultNormalizer
}

// NewAggregationService creates an aggregation service.
func NewAggregationService(normalizer *ResultNormalizer) *AggregationService {
	if normalizer == nil {
		normalizer = NewResultNormalizer()
	}
	return &AggregationService{normalizer: normalizer}
}

// AggregateResults normalises each result and aggregates them.
// Unnamed results are numbered from 1 ("source_1", "source_2"...).
func (s *AggregationService) AggregateResults(
	results []domain.SourceResult,
	names []string,
) (domain.AggregatedTotal, []domain.NormalizedContribution, error) {
	contributions := make([]domain.NormalizedContribution, 0, len(results))
	for i, r := range results {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		c, err := s.normalizer.Normalize(r, i+1, name)
		if err != nil {
			return domain.AggregatedTotal{}, nil, err
		}
		contributions = append(contributions, c)
	}

	agg, err := Aggregate(contributions)
	if err != nil {
		return domain.AggregatedTotal{}, nil, err
	}
	return agg, contributions, nil
}
