package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

func testReport(id string, at time.Time) *domain.BatchReport {
	return &domain.BatchReport{
		ID:        id,
		CreatedAt: at,
		Boundary:  domain.BoundarySpec{Scope: domain.ScopeFull},
		Entries: []domain.BatchEntry{
			{Index: 0, FarmID: "F-1", State: domain.EntrySucceeded, Total: domain.Float(10)},
		},
		Summary: domain.BatchSummary{Processed: 1, Succeeded: 1, TotalCO2eqKg: 10},
	}
}

func TestReportStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	report := testReport("r1", time.Now())

	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, report, got)

	// Stored copy is isolated from caller mutation.
	report.Entries[0].FarmID = "changed"
	got, err = store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "F-1", got.Entries[0].FarmID)
}

func TestReportStore_GetMissing(t *testing.T) {
	_, err := NewReportStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, testReport("old", base)))
	require.NoError(t, store.Save(ctx, testReport("new", base.Add(time.Hour))))
	require.NoError(t, store.Save(ctx, testReport("mid", base.Add(time.Minute))))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)
	assert.Nil(t, all[0].Entries)
	assert.Equal(t, 1, all[0].Summary.Succeeded)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestReportStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	require.NoError(t, store.Save(ctx, testReport("r1", time.Now())))

	require.NoError(t, store.Delete(ctx, "r1"))
	assert.ErrorIs(t, store.Delete(ctx, "r1"), domain.ErrNotFound)

	_, err := store.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
