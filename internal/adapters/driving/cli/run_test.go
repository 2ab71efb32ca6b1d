package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/tabular"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

func TestRunCmd_RequiresInput(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "run")

	assert.ErrorContains(t, err, "accepts 1 arg(s)")
}

func TestRunCmd_WritesEntriesAndSummary(t *testing.T) {
	env := setupTestServices(t)

	out, stderr, err := executeWithStderr(t, "run", env.input, "--progress=false")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, tabular.EntryHeader(), rows[0])
	assert.Equal(t, []string{"0", "f1", "succeeded"}, rows[1][:3])
	assert.Equal(t, []string{"1", "f2", "failed", tabular.NA}, rows[2][:4])
	assert.Equal(t, []string{"2", "f3", "skipped", tabular.NA}, rows[3][:4])

	var summary tabular.Summary
	require.NoError(t, yaml.Unmarshal([]byte(stderr), &summary))
	assert.Equal(t, 3, summary.Counts.Processed)
	assert.Equal(t, 1, summary.Counts.Succeeded)
	assert.Equal(t, 1, summary.Counts.Failed)
	assert.Equal(t, 1, summary.Counts.Skipped)
	assert.Greater(t, summary.Counts.TotalCO2eqKg, 0.0)

	// The run is persisted.
	reports, err := env.reports.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, summary.ID, reports[0].ID)
	assert.Equal(t, env.input, reports[0].Input)
}

func TestRunCmd_PartialBoundary(t *testing.T) {
	env := setupTestServices(t)
	outPath := filepath.Join(env.dir, "results.json")
	summaryPath := filepath.Join(env.dir, "summary.json")

	_, err := execute(t, "run", env.input, "--progress=false",
		"--scope", "partial", "--include", "enteric,energy",
		"-o", outPath, "--summary", summaryPath, "--workers", "2")
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var report domain.BatchReport
	require.NoError(t, json.Unmarshal(raw, &report))

	assert.Equal(t, domain.BoundarySpec{Scope: domain.ScopePartial, Include: []string{"energy", "enteric"}}, report.Boundary)
	f1 := report.Entries[0]
	require.Equal(t, domain.EntrySucceeded, f1.State, f1.Error)
	assert.Zero(t, f1.Breakdown[domain.SourceSoil])
	assert.Zero(t, f1.Breakdown[domain.SourceManure])
	assert.Zero(t, f1.Breakdown[domain.SourceInputs])
	assert.Greater(t, f1.Breakdown[domain.SourceEnteric], 0.0)
	assert.Greater(t, f1.Breakdown[domain.SourceEnergy], 0.0)
	assert.InDelta(t, f1.Breakdown[domain.SourceEnteric]+f1.Breakdown[domain.SourceEnergy], *f1.Total, 1e-6)

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), `"by_source_co2eq_kg"`)
}

func TestRunCmd_PrintsStyledSummaryWhenWritingFile(t *testing.T) {
	env := setupTestServices(t)
	outPath := filepath.Join(env.dir, "results.csv")

	out, err := execute(t, "run", env.input, "--progress=false", "-o", outPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Run ")
	assert.Contains(t, out, "Succeeded")
	assert.FileExists(t, outPath)
}

func TestRunCmd_InvalidOverride(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "run", env.input, "--progress=false", "--include", "methane")

	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestRunCmd_UnsupportedInput(t *testing.T) {
	env := setupTestServices(t)
	path := filepath.Join(env.dir, "farms.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	_, err := execute(t, "run", path, "--progress=false")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRunCmd_ReadsStdin(t *testing.T) {
	setupTestServices(t)
	rootCmd.SetIn(strings.NewReader(farmsCSV))
	defer rootCmd.SetIn(nil)

	out, err := execute(t, "run", "-", "--progress=false")

	require.NoError(t, err)
	assert.Contains(t, out, "f1,succeeded")
}
