package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

const (
	uriScheme = "dairyghg://"

	// reportListLimit caps the reports resource.
	reportListLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "boundary",
		Name:        "boundary",
		Description: "The configured system boundary and which sources it counts",
		MIMEType:    "application/json",
	}, s.handleBoundaryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "Recent batch reports, newest first",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{reportId}",
		Name:        "report",
		Description: "One batch report with every farm entry",
		MIMEType:    "application/json",
	}, s.handleReportResource)
}

type sourceInfo struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

type boundaryInfo struct {
	Scope   domain.Scope `json:"scope"`
	Include []string     `json:"include,omitempty"`
	Sources []sourceInfo `json:"sources"`
}

// handleBoundaryResource describes the stored boundary.
func (s *Server) handleBoundaryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	boundary, err := settings.Boundary.Boundary()
	if err != nil {
		return nil, fmt.Errorf("building boundary: %w", err)
	}

	info := boundaryInfo{Scope: boundary.Scope(), Include: settings.Boundary.Include}
	for _, name := range domain.AllSources() {
		info.Sources = append(info.Sources, sourceInfo{Name: name, Included: boundary.Includes(name)})
	}
	return jsonResult(req.Params.URI, info)
}

type reportInfo struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Input     string              `json:"input,omitempty"`
	Boundary  domain.BoundarySpec `json:"boundary"`
	Summary   domain.BatchSummary `json:"summary"`
}

// handleReportsResource lists report headers.
func (s *Server) handleReportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos := []reportInfo{}
	if s.ports.Reports != nil {
		reports, err := s.ports.Reports.List(ctx, reportListLimit)
		if err != nil {
			return nil, fmt.Errorf("listing reports: %w", err)
		}
		for _, r := range reports {
			infos = append(infos, reportInfo{
				ID:        r.ID,
				CreatedAt: r.CreatedAt,
				Input:     r.Input,
				Boundary:  r.Boundary,
				Summary:   r.Summary,
			})
		}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleReportResource returns one full report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractReportID(req.Params.URI)
	if s.ports.Reports == nil || id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	report, err := s.ports.Reports.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}
	return jsonResult(req.Params.URI, report)
}

// extractReportID extracts the ID from dairyghg://reports/{reportId}.
func extractReportID(uri string) string {
	id, ok := strings.CutPrefix(uri, uriScheme+"reports/")
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
