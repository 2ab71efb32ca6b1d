package driving

import (
	"context"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// FarmAssessor runs the per-farm pipeline for a single record.
type FarmAssessor interface {
	// Assess computes one farm. Per-farm problems are reported in the entry's
	// State and Error; only caller errors (domain.ErrNoContributions) are returned.
	Assess(record domain.FarmRecord) (domain.BatchEntry, error)

	// Boundary returns the boundary the assessor applies.
	Boundary() domain.Boundary
}

// BatchRunner assesses many farms with per-farm failure isolation.
type BatchRunner interface {
	// Run assesses every record and returns the report, entries in input order.
	Run(ctx context.Context, records []domain.FarmRecord, opts RunOptions) (*domain.BatchReport, error)
}

// RunOptions tunes one batch run.
type RunOptions struct {
	// Input names the origin of the records for the report.
	Input string

	// Progress, if set, is called once per finished entry. Calls come from
	// several worker goroutines at once; it must be safe for concurrent use.
	Progress func(entry domain.BatchEntry)
}

// Aggregator reduces loosely shaped source results to a total.
type Aggregator interface {
	// AggregateResults normalises each result and aggregates the contributions.
	// names, when non-nil, supplies caller bindings aligned with results.
	AggregateResults(results []domain.SourceResult, names []string) (domain.AggregatedTotal, []domain.NormalizedContribution, error)
}

// Engine builds assessment pipelines from settings. Command flags and MCP
// arguments override stored settings per call, so pipelines are built on demand.
type Engine interface {
	// Assessor returns a single-farm assessor for the settings.
	Assessor(settings domain.AssessmentSettings) (FarmAssessor, error)

	// Runner returns a batch runner for the settings.
	Runner(settings domain.AssessmentSettings) (BatchRunner, error)
}
