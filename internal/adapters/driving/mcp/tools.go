package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// AssessFarmInput is the input schema for the assess_farm tool.
type AssessFarmInput struct {
	Farm    domain.FarmRecord `json:"farm" jsonschema:"one farm-year; farm_id, milk_litres and cows_milking are required"`
	Scope   string            `json:"scope,omitempty" jsonschema:"boundary scope override: full or partial"`
	Include []string          `json:"include,omitempty" jsonschema:"sources counted toward the total (enteric, manure, soil, energy, inputs)"`
}

// AssessFarmOutput is the output schema for the assess_farm tool.
type AssessFarmOutput struct {
	Entry    domain.BatchEntry   `json:"entry"`
	Boundary domain.BoundarySpec `json:"boundary"`
}

// AggregateResultsInput is the input schema for the aggregate_results tool.
type AggregateResultsInput struct {
	Results []map[string]any `json:"results" jsonschema:"source result records, one per source model call"`
	Names   []string         `json:"names,omitempty" jsonschema:"optional source names aligned with results"`
}

// AggregateResultsOutput is the output schema for the aggregate_results tool.
type AggregateResultsOutput struct {
	Total             float64                         `json:"total"`
	Breakdown         map[string]float64              `json:"breakdown"`
	SourceCount       int                             `json:"source_count"`
	ContributionCount int                             `json:"contribution_count"`
	Contributions     []domain.NormalizedContribution `json:"contributions"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assess_farm",
		Description: "Estimate the greenhouse-gas emissions of one dairy farm-year",
	}, s.handleAssessFarm)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "aggregate_results",
		Description: "Reduce heterogeneous source result records to one boundary total in kg CO2eq",
	}, s.handleAggregateResults)
}

// handleAssessFarm runs the per-farm pipeline. Per-farm failures come back
// in the entry state, not as tool errors.
func (s *Server) handleAssessFarm(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AssessFarmInput,
) (*mcp.CallToolResult, AssessFarmOutput, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, AssessFarmOutput{}, fmt.Errorf("loading settings: %w", err)
	}
	settings.OverrideBoundary(input.Scope, input.Include)

	assessor, err := s.ports.Engine.Assessor(*settings)
	if err != nil {
		return nil, AssessFarmOutput{}, err
	}

	entry, err := assessor.Assess(input.Farm)
	if err != nil {
		return nil, AssessFarmOutput{}, err
	}
	return nil, AssessFarmOutput{Entry: entry, Boundary: assessor.Boundary().Spec()}, nil
}

// handleAggregateResults normalises and sums caller-supplied results.
func (s *Server) handleAggregateResults(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AggregateResultsInput,
) (*mcp.CallToolResult, AggregateResultsOutput, error) {
	results := make([]domain.SourceResult, len(input.Results))
	for i, raw := range input.Results {
		results[i] = domain.ParseSourceResult(raw)
	}

	agg, contributions, err := s.ports.Aggregator.AggregateResults(results, input.Names)
	if err != nil {
		return nil, AggregateResultsOutput{}, err
	}

	return nil, AggregateResultsOutput{
		Total:             agg.Total,
		Breakdown:         agg.Breakdown,
		SourceCount:       agg.SourceCount,
		ContributionCount: agg.ContributionCount,
		Contributions:     contributions,
	}, nil
}
