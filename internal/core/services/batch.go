package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
	"github.com/custodia-labs/dairyghg/internal/logger"
)

// Ensure BatchOrchestrator implements the interface.
var _ driving.BatchRunner = (*BatchOrchestrator)(nil)

// DefaultWorkers is the worker pool size when none is configured.
const DefaultWorkers = 4

// BatchOrchestrator assesses many farms on a bounded worker pool.
// A failing farm never aborts the batch; its entry records the failure.
type BatchOrchestrator struct {
	assessor driving.FarmAssessor
	store    driven.ReportStore
	workers  int
	now      func() time.Time
	newID    func() string
}

// BatchOption configures a BatchOrchestrator.
type BatchOption func(*BatchOrchestrator)

// WithWorkers sets the worker pool size. Values below 1 are ignored.
func WithWorkers(n int) BatchOption {
	return func(o *BatchOrchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithReportStore persists every finished report.
func WithReportStore(store driven.ReportStore) BatchOption {
	return func(o *BatchOrchestrator) {
		o.store = store
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) BatchOption {
	return func(o *BatchOrchestrator) {
		o.now = now
	}
}

// WithIDGenerator overrides report ID generation.
func WithIDGenerator(newID func() string) BatchOption {
	return func(o *BatchOrchestrator) {
		o.newID = newID
	}
}

// NewBatchOrchestrator creates a batch orchestrator around an assessor.
func NewBatchOrchestrator(assessor driving.FarmAssessor, opts ...BatchOption) *BatchOrchestrator {
	o := &BatchOrchestrator{
		assessor: assessor,
		workers:  DefaultWorkers,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run assesses every record. Entries keep input order regardless of which
// worker finished first. Cancelling ctx stops scheduling further farms and
// returns ctx.Err(). ErrNoContributions from the assessor aborts the run.
func (o *BatchOrchestrator) Run(ctx context.Context, records []domain.FarmRecord, opts driving.RunOptions) (*domain.BatchReport, error) {
	logger.Section("Batch run")
	logger.Info("Assessing %d farms on %d workers (boundary %s)", len(records), o.workers, o.assessor.Boundary())

	entries := make([]domain.BatchEntry, len(records))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)

	for i := range records {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			entry, err := o.assessor.Assess(records[i])
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			entry.Index = i
			entries[i] = entry
			if opts.Progress != nil {
				opts.Progress(entry)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &domain.BatchReport{
		ID:        o.newID(),
		CreatedAt: o.now().UTC(),
		Boundary:  o.assessor.Boundary().Spec(),
		Input:     opts.Input,
		Entries:   entries,
		Summary:   domain.Summarize(entries),
	}

	logger.Info("Batch %s: %d succeeded, %d failed, %d skipped",
		report.ID, report.Summary.Succeeded, report.Summary.Failed, report.Summary.Skipped)

	if o.store != nil {
		if err := o.store.Save(ctx, report); err != nil {
			return report, fmt.Errorf("save report: %w", err)
		}
	}

	return report, nil
}
