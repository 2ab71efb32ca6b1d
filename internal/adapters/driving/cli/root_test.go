package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dairyghg/internal/core/services"
	"github.com/custodia-labs/dairyghg/internal/intensity"
	"github.com/custodia-labs/dairyghg/internal/sources"
)

const farmsCSV = `farm_id,milk_litres,cows_milking,cows_dry,heifers,area_total_ha,n_fertilizer_kg,diesel_l,electricity_kwh,concentrate_kg
f1,730000,100,15,30,120,5000,1800,40000,5000
f2,500000,-5,,,,,,,
f3,,80,,,,,,,
`

type testEnv struct {
	settings *services.SettingsService
	reports  *services.ReportService
	input    string
	dir      string
}

// setupTestServices wires real services over in-memory stores.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewReportStore()
	env := &testEnv{
		settings: services.NewSettingsService(memory.NewConfigStore()),
		reports:  services.NewReportService(store),
		dir:      t.TempDir(),
	}
	env.input = filepath.Join(env.dir, "farms.csv")
	require.NoError(t, os.WriteFile(env.input, []byte(farmsCSV), 0600))

	SetServices(Services{
		Engine: services.NewEngine(
			sources.NewFactory(nil),
			services.WithEngineStore(store),
			services.WithEngineDerivers(intensity.Defaults()...),
		),
		Settings:   env.settings,
		Reports:    env.reports,
		Aggregator: services.NewAggregationService(nil),
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return env
}

// resetFlags restores every flag to its default so earlier executions
// do not leak into the next one.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithStderr(t, args...)
	return out, err
}

func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"run", "assess", "template", "report", "settings", "boundary", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestCommands_WithoutServices(t *testing.T) {
	SetServices(Services{})

	for _, args := range [][]string{
		{"run", "farms.csv", "--progress=false"},
		{"assess", "farms.csv", "--farm", "f1"},
		{"report", "list"},
		{"settings", "show"},
		{"boundary"},
	} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, errNotConfigured, "%v", args)
	}
}
