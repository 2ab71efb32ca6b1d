package domain

import "time"

// EntryState is the terminal state of one farm in a batch.
type EntryState string

// Terminal states.
const (
	// EntrySucceeded means every stage completed.
	EntrySucceeded EntryState = "succeeded"

	// EntryFailed means validation, extraction or a model failed for this farm.
	EntryFailed EntryState = "failed"

	// EntrySkipped means the record was structurally invalid before computation.
	EntrySkipped EntryState = "skipped"
)

// String returns the string representation.
func (s EntryState) String() string {
	return string(s)
}

// BatchEntry is the outcome for one farm. Numeric outputs are only
// meaningful when State is EntrySucceeded; otherwise they are absent.
type BatchEntry struct {
	// Index is the position of the input record.
	Index int `json:"index"`

	// FarmID identifies the farm.
	FarmID string `json:"farm_id"`

	// State is the terminal state.
	State EntryState `json:"state"`

	// Breakdown maps every source name to its kg CO2eq.
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	// Total is the boundary-compliant farm total, nil when not computed.
	Total *float64 `json:"total,omitempty"`

	// Intensities holds the derived metrics by name.
	Intensities map[string]Intensity `json:"intensities,omitempty"`

	// Error is the failure message for failed or skipped entries.
	Error string `json:"error,omitempty"`

	// Warnings lists recoverable issues (defaults used, fallbacks taken).
	Warnings []string `json:"warnings,omitempty"`
}

// Success returns true if the entry succeeded.
func (e BatchEntry) Success() bool {
	return e.State == EntrySucceeded
}

// BatchSummary counts outcomes across a batch.
type BatchSummary struct {
	Processed int `json:"processed" yaml:"processed"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
	Skipped   int `json:"skipped" yaml:"skipped"`

	// TotalCO2eqKg sums the totals of succeeded farms.
	TotalCO2eqKg float64 `json:"total_co2eq_kg" yaml:"total_co2eq_kg"`
}

// BatchReport is the result of assessing many farms.
type BatchReport struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// CreatedAt is the processing timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Boundary is the boundary configuration used.
	Boundary BoundarySpec `json:"boundary"`

	// Input names where the records came from, if known.
	Input string `json:"input,omitempty"`

	// Entries holds one entry per input record, in input order.
	Entries []BatchEntry `json:"entries"`

	// Summary counts outcomes.
	Summary BatchSummary `json:"summary"`
}

// Summarize computes the summary over entries.
func Summarize(entries []BatchEntry) BatchSummary {
	s := BatchSummary{Processed: len(entries)}
	for _, e := range entries {
		switch e.State {
		case EntrySucceeded:
			s.Succeeded++
			if e.Total != nil {
				s.TotalCO2eqKg += *e.Total
			}
		case EntryFailed:
			s.Failed++
		case EntrySkipped:
			s.Skipped++
		}
	}
	return s
}
