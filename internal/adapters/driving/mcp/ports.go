package mcp

import (
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Engine builds assessors from settings.
	Engine driving.Engine

	// Settings supplies the stored boundary and factors.
	Settings driving.SettingsService

	// Aggregator reduces caller-supplied source results.
	Aggregator driving.Aggregator

	// Reports exposes stored batch reports. Optional.
	Reports driving.ReportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Engine == nil {
		return ErrMissingEngine
	}
	if p.Settings == nil {
		return ErrMissingSettings
	}
	if p.Aggregator == nil {
		return ErrMissingAggregator
	}
	return nil
}
