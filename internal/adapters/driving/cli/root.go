// Package cli provides the dairyghg command-line interface.
//
// Commands are package-level cobra commands registered in init. Core
// services are injected once through SetServices by the composition root.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
	"github.com/custodia-labs/dairyghg/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var verbose bool

// Services holds the driving ports commands depend on.
type Services struct {
	Engine     driving.Engine
	Settings   driving.SettingsService
	Reports    driving.ReportService
	Aggregator driving.Aggregator
}

var (
	engine          driving.Engine
	settingsService driving.SettingsService
	reportService   driving.ReportService
	aggregator      driving.Aggregator
)

var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "dairyghg",
	Short: "Estimate greenhouse-gas emissions of dairy farms",
	Long: `dairyghg combines enteric fermentation, manure management, soil nitrogen,
energy use and purchased inputs into a boundary-aware farm total, derives
milk and area intensities, and repeats over many farms with per-farm
failure isolation.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and diagnostics to stderr")
}

// SetServices injects the core services.
func SetServices(s Services) {
	engine = s.Engine
	settingsService = s.Settings
	reportService = s.Reports
	aggregator = s.Aggregator
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
