package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/tabular"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// addBoundaryFlags registers the per-invocation boundary overrides.
func addBoundaryFlags(cmd *cobra.Command) {
	cmd.Flags().String("scope", "", "boundary scope override: full or partial (full without --include is unbounded)")
	cmd.Flags().String("include", "", "comma-separated sources counted toward the total")
}

// effectiveSettings loads stored settings and applies command overrides.
func effectiveSettings(cmd *cobra.Command) (*domain.AssessmentSettings, error) {
	if settingsService == nil {
		return nil, fmt.Errorf("settings: %w", errNotConfigured)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	scope, _ := cmd.Flags().GetString("scope")
	include, _ := cmd.Flags().GetString("include")
	settings.OverrideBoundary(scope, splitList(include))

	if f := cmd.Flags().Lookup("workers"); f != nil {
		if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
			settings.Workers = n
		}
	}
	return settings, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// readRecords decodes farm records from path. "-" reads CSV from stdin.
func readRecords(ctx context.Context, cmd *cobra.Command, path string) ([]domain.FarmRecord, error) {
	if path == "-" {
		return tabular.NewCSVReader().Read(ctx, cmd.InOrStdin())
	}

	reader, err := tabular.ReaderFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := reader.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// createOutput opens path for writing, or returns stdout for "" and "-".
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}

// formatFor picks the report format from the flag or the output extension.
func formatFor(flag, path string) string {
	if flag != "" {
		return flag
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return "json"
	}
	return "csv"
}
