package domain

import "sort"

// ExtractionMethod records how a contribution's amount was obtained.
type ExtractionMethod string

// Extraction methods, in probe order.
const (
	// MethodExcluded means the source was outside the boundary, or its total was null.
	MethodExcluded ExtractionMethod = "excluded"

	// MethodDirect means a candidate total field carried the amount.
	MethodDirect ExtractionMethod = "direct"

	// MethodBreakdown means the amount is the sum of a breakdown field.
	MethodBreakdown ExtractionMethod = "breakdown"

	// MethodFlattened is the low-confidence sum of every numeric leaf.
	MethodFlattened ExtractionMethod = "flattened"

	// MethodSynthesized marks a zero contribution created without calling a model.
	MethodSynthesized ExtractionMethod = "synthesized"
)

// LowConfidence returns true for amounts that were guessed rather than read.
func (m ExtractionMethod) LowConfidence() bool {
	return m == MethodFlattened
}

// NormalizedContribution is one source's amount in kg CO2eq.
// Amount is finite and non-negative; Source is never empty.
type NormalizedContribution struct {
	// Source is the resolved source name.
	Source string `json:"source"`

	// Amount is the contribution in kg CO2eq.
	Amount float64 `json:"amount"`

	// Method is how Amount was obtained.
	Method ExtractionMethod `json:"method"`

	// Field names the total or breakdown field read, when there was one.
	Field string `json:"field,omitempty"`

	// Excluded is true when the source was outside the boundary.
	Excluded bool `json:"excluded,omitempty"`
}

// ZeroContribution returns a synthesized zero for a source that was not computed.
func ZeroContribution(source string, excluded bool) NormalizedContribution {
	return NormalizedContribution{
		Source:   source,
		Method:   MethodSynthesized,
		Excluded: excluded,
	}
}

// AggregatedTotal is a farm total and its per-source breakdown.
// Total equals the sum of Breakdown values.
type AggregatedTotal struct {
	// Total is the grand total in kg CO2eq.
	Total float64 `json:"total"`

	// Breakdown maps each distinct source name to its summed amount.
	Breakdown map[string]float64 `json:"breakdown"`

	// SourceCount is the number of distinct source names.
	SourceCount int `json:"source_count"`

	// ContributionCount is the number of contributions aggregated.
	ContributionCount int `json:"contribution_count"`
}

// Sources returns the breakdown keys in sorted order.
func (a AggregatedTotal) Sources() []string {
	keys := make([]string, 0, len(a.Breakdown))
	for k := range a.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Share returns a source's fraction of the total, or 0 when the total is 0.
func (a AggregatedTotal) Share(source string) float64 {
	if a.Total == 0 {
		return 0
	}
	return a.Breakdown[source] / a.Total
}
