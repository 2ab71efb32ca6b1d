package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage assessment settings",
	Long: `View and change the stored boundary, worker count, warming potentials
and default cascade values. Settings live in $DAIRYGHG_HOME/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. Lists are comma-separated.

Keys:
  boundary.scope           full or partial
  boundary.include         sources counted, e.g. enteric,manure
  batch.workers            parallel farms
  factors.gwp_ch4          CH4 warming potential (100-year)
  factors.gwp_n2o          N2O warming potential (100-year)
  defaults.climate         cold, temperate or warm
  defaults.manure_system   pasture, solid_storage, liquid_storage, daily_spread, anaerobic_digester
  defaults.tier            1 or 2
  energy.country           grid country code
  inputs.region            input emission region
  models.<source>.<factor> per-model factor override, e.g. models.enteric.ef_milking_cows`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	cmd.Println(outputStyles.Title.Render("Current Settings"))
	printField(cmd, "boundary.scope", string(settings.Boundary.Scope))
	printField(cmd, "boundary.include", strings.Join(settings.Boundary.Include, ","))
	printField(cmd, "batch.workers", fmt.Sprintf("%d", settings.Workers))
	printField(cmd, "factors.gwp_ch4", fmt.Sprintf("%g", settings.Factors.GWPCH4))
	printField(cmd, "factors.gwp_n2o", fmt.Sprintf("%g", settings.Factors.GWPN2O))
	printField(cmd, "defaults.climate", string(settings.Defaults.Climate))
	printField(cmd, "defaults.manure_system", string(settings.Defaults.ManureSystem))
	printField(cmd, "defaults.tier", fmt.Sprintf("%d", settings.Defaults.Tier))
	printField(cmd, "energy.country", settings.Defaults.Country)
	printField(cmd, "inputs.region", settings.Defaults.Region)

	overrides := settingsService.ModelConfigs()
	sources := make([]string, 0, len(overrides))
	for source := range overrides {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	for _, source := range sources {
		factors := make([]string, 0, len(overrides[source]))
		for factor := range overrides[source] {
			factors = append(factors, factor)
		}
		sort.Strings(factors)
		for _, factor := range factors {
			printField(cmd, "models."+source+"."+factor, fmt.Sprintf("%v", overrides[source][factor]))
		}
	}

	if err := settings.Validate(); err != nil {
		cmd.Println(outputStyles.Warning.Render(fmt.Sprintf("Warning: %v", err)))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
