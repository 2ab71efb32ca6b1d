package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

func TestServer_handleAssessFarm(t *testing.T) {
	ctx := context.Background()

	t.Run("assesses with stored settings", func(t *testing.T) {
		ports := newTestPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AssessFarmInput{Farm: domain.FarmRecord{FarmID: "f1"}}
		_, output, err := server.handleAssessFarm(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "f1", output.Entry.FarmID)
		assert.Equal(t, domain.EntrySucceeded, output.Entry.State)
		assert.Equal(t, domain.ScopeFull, output.Boundary.Scope)
	})

	t.Run("boundary override reaches the engine", func(t *testing.T) {
		ports := newTestPorts()
		engine := ports.Engine.(*mockEngine)
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AssessFarmInput{
			Farm:    domain.FarmRecord{FarmID: "f1"},
			Scope:   "partial",
			Include: []string{"enteric", "manure"},
		}
		_, output, err := server.handleAssessFarm(ctx, nil, input)

		require.NoError(t, err)
		require.Len(t, engine.got, 1)
		assert.Equal(t, domain.ScopePartial, engine.got[0].Boundary.Scope)
		assert.Equal(t, []string{"enteric", "manure"}, output.Boundary.Include)
	})

	t.Run("settings failure is returned", func(t *testing.T) {
		ports := newTestPorts()
		ports.Settings = &mockSettingsService{err: errors.New("config unreadable")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAssessFarm(ctx, nil, AssessFarmInput{})

		assert.ErrorContains(t, err, "config unreadable")
	})

	t.Run("engine failure is returned", func(t *testing.T) {
		ports := newTestPorts()
		ports.Engine.(*mockEngine).err = domain.ErrInvalidInput
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAssessFarm(ctx, nil, AssessFarmInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleAggregateResults(t *testing.T) {
	ctx := context.Background()

	t.Run("parses records and returns totals", func(t *testing.T) {
		ports := newTestPorts()
		agg := &mockAggregator{
			total: domain.AggregatedTotal{
				Total:             15,
				Breakdown:         map[string]float64{"enteric": 10, "manure": 5},
				SourceCount:       2,
				ContributionCount: 2,
			},
			contrib: []domain.NormalizedContribution{
				{Source: "enteric", Amount: 10, Method: domain.MethodDirect},
				{Source: "manure", Amount: 5, Method: domain.MethodDirect},
			},
		}
		ports.Aggregator = agg
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AggregateResultsInput{
			Results: []map[string]any{
				{"source": "enteric", "co2eq_kg": 10.0},
				{"total": 5.0},
			},
			Names: []string{"", "manure"},
		}
		_, output, err := server.handleAggregateResults(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 15.0, output.Total)
		assert.Equal(t, 2, output.SourceCount)
		assert.Len(t, output.Contributions, 2)
		require.Len(t, agg.results, 2)
		assert.Equal(t, "enteric", agg.results[0].Source)
		assert.Equal(t, []string{"", "manure"}, agg.names)
	})

	t.Run("no results is a caller error", func(t *testing.T) {
		ports := newTestPorts()
		ports.Aggregator = &mockAggregator{err: domain.ErrNoContributions}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAggregateResults(ctx, nil, AggregateResultsInput{})

		assert.ErrorIs(t, err, domain.ErrNoContributions)
	})
}
