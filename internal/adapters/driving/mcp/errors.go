// Package mcp provides a Model Context Protocol server adapter for dairyghg.
// It lets AI assistants assess farms and aggregate source results.
package mcp

import "errors"

var (
	// ErrMissingEngine is returned when the assessment engine is not provided.
	ErrMissingEngine = errors.New("mcp: assessment engine is required")

	// ErrMissingSettings is returned when the settings service is not provided.
	ErrMissingSettings = errors.New("mcp: settings service is required")

	// ErrMissingAggregator is returned when the aggregator is not provided.
	ErrMissingAggregator = errors.New("mcp: aggregator is required")
)
