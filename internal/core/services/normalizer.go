package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/logger"
)

// ResultNormalizer coerces loosely shaped source results into contributions.
// Probe order is fixed at construction; a ResultNormalizer is safe for concurrent use.
type ResultNormalizer struct {
	totalFields     []string
	breakdownFields []string
	amountColumns   []string
}

// NormalizerOption configures a ResultNormalizer.
type NormalizerOption func(*ResultNormalizer)

// WithTotalFields replaces the ordered candidate total fields.
func WithTotalFields(fields ...string) NormalizerOption {
	return func(n *ResultNormalizer) {
		n.totalFields = append([]string(nil), fields...)
	}
}

// WithBreakdownFields replaces the ordered candidate breakdown fields.
func WithBreakdownFields(fields ...string) NormalizerOption {
	return func(n *ResultNormalizer) {
		n.breakdownFields = append([]string(nil), fields...)
	}
}

// WithAmountColumns replaces the ordered candidate amount columns for tables.
func WithAmountColumns(cols ...string) NormalizerOption {
	return func(n *ResultNormalizer) {
		n.amountColumns = append([]string(nil), cols...)
	}
}

// NewResultNormalizer creates a normalizer with the default probe lists.
func NewResultNormalizer(opts ...NormalizerOption) *ResultNormalizer {
	n := &ResultNormalizer{
		totalFields:     domain.TotalFields(),
		breakdownFields: domain.BreakdownFields(),
		amountColumns:   domain.AmountColumns(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize extracts one contribution from a result. index is the result's
// position and name an optional caller-supplied binding. The first matching
// strategy wins:
//
//  1. excluded by boundary, or first present total field is null: zero
//  2. first candidate total field holding a finite non-negative number
//  3. sum of the first candidate breakdown with finite numeric leaves
//  4. sum of every numeric leaf in the result, if positive (low confidence)
//
// Otherwise it fails with domain.ErrExtraction.
func (n *ResultNormalizer) Normalize(result domain.SourceResult, index int, name string) (domain.NormalizedContribution, error) {
	source := ResolveSourceName(result, index, name)

	if result.Excluded {
		return domain.NormalizedContribution{
			Source:   source,
			Method:   domain.MethodExcluded,
			Excluded: true,
		}, nil
	}

	if c, ok := n.direct(result, source); ok {
		return c, nil
	}

	if c, ok := n.breakdown(result, source); ok {
		return c, nil
	}

	if sum, count := flattenResult(result); count > 0 && domain.IsFinite(sum) && sum > 0 {
		logger.Warn("source %s: no total or breakdown field, using sum of %d numeric leaves", source, count)
		return domain.NormalizedContribution{
			Source: source,
			Amount: sum,
			Method: domain.MethodFlattened,
		}, nil
	}

	return domain.NormalizedContribution{}, fmt.Errorf("%w: source %q", domain.ErrExtraction, source)
}

// direct probes the candidate total fields. An explicit null in the first
// present field short-circuits to zero; non-finite or negative values are
// skipped in favour of the next candidate.
func (n *ResultNormalizer) direct(result domain.SourceResult, source string) (domain.NormalizedContribution, bool) {
	firstPresent := true
	for _, field := range n.totalFields {
		v, ok := result.Fields[field]
		if !ok {
			continue
		}
		if v == nil {
			if firstPresent {
				return domain.NormalizedContribution{
					Source: source,
					Method: domain.MethodExcluded,
					Field:  field,
				}, true
			}
			continue
		}
		firstPresent = false
		if domain.IsFinite(*v) && *v >= 0 {
			return domain.NormalizedContribution{
				Source: source,
				Amount: *v,
				Method: domain.MethodDirect,
				Field:  field,
			}, true
		}
	}
	return domain.NormalizedContribution{}, false
}

func (n *ResultNormalizer) breakdown(result domain.SourceResult, source string) (domain.NormalizedContribution, bool) {
	for _, field := range n.breakdownFields {
		bd, ok := result.Breakdowns[field]
		if !ok {
			continue
		}

		var sum float64
		var count int
		if bd.Table != nil {
			sum, count = n.sumTable(bd.Table)
		} else {
			sum, count = sumLeaves(bd.Values)
		}

		if count > 0 && domain.IsFinite(sum) && sum >= 0 {
			return domain.NormalizedContribution{
				Source: source,
				Amount: sum,
				Method: domain.MethodBreakdown,
				Field:  field,
			}, true
		}
	}
	return domain.NormalizedContribution{}, false
}

// sumTable sums the first candidate amount column that has numeric cells,
// or every numeric cell when no amount column matches.
func (n *ResultNormalizer) sumTable(t *domain.Table) (float64, int) {
	for _, col := range n.amountColumns {
		cells := t.Column(col)
		if cells == nil {
			continue
		}
		if sum, count := sumLeaves(cells); count > 0 {
			return sum, count
		}
	}

	var sum float64
	var count int
	for _, row := range t.Rows {
		s, c := sumLeaves(row)
		sum += s
		count += c
	}
	return sum, count
}

// ResolveSourceName picks the contribution name: the caller binding, then
// the result's source, type and category fields, then "source_<index>".
func ResolveSourceName(result domain.SourceResult, index int, name string) string {
	for _, candidate := range []string{name, result.Source, result.Type, result.Category} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return fmt.Sprintf("source_%d", index)
}

// sumLeaves sums the finite numeric leaves of a nested value.
func sumLeaves(v any) (float64, int) {
	switch x := v.(type) {
	case nil:
		return 0, 0
	case map[string]any:
		var sum float64
		var count int
		for _, child := range x {
			s, c := sumLeaves(child)
			sum += s
			count += c
		}
		return sum, count
	case map[string]float64:
		var sum float64
		var count int
		for _, f := range x {
			if domain.IsFinite(f) {
				sum += f
				count++
			}
		}
		return sum, count
	case []any:
		var sum float64
		var count int
		for _, child := range x {
			s, c := sumLeaves(child)
			sum += s
			count += c
		}
		return sum, count
	case []float64:
		var sum float64
		var count int
		for _, f := range x {
			if domain.IsFinite(f) {
				sum += f
				count++
			}
		}
		return sum, count
	case *float64:
		if x != nil && domain.IsFinite(*x) {
			return *x, 1
		}
		return 0, 0
	default:
		if f, ok := domain.AsFloat(x); ok && domain.IsFinite(f) {
			return f, 1
		}
		return 0, 0
	}
}

// flattenResult sums every finite numeric leaf anywhere in the result.
func flattenResult(r domain.SourceResult) (float64, int) {
	var sum float64
	var count int
	add := func(s float64, c int) {
		sum += s
		count += c
	}

	for _, v := range r.Fields {
		add(sumLeaves(v))
	}
	for _, bd := range r.Breakdowns {
		add(sumLeaves(bd.Values))
		if bd.Table != nil {
			for _, row := range bd.Table.Rows {
				add(sumLeaves(row))
			}
		}
	}
	add(sumLeaves(r.Extra))
	return sum, count
}
