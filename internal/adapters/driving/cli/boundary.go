package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

var boundaryCmd = &cobra.Command{
	Use:   "boundary",
	Short: "Show which emission sources the boundary counts",
	Long: `Resolve the stored boundary, with any --scope and --include overrides,
and list every emission source as included or excluded.`,
	Args: cobra.NoArgs,
	RunE: runBoundary,
}

func init() {
	addBoundaryFlags(boundaryCmd)
	rootCmd.AddCommand(boundaryCmd)
}

func runBoundary(cmd *cobra.Command, _ []string) error {
	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	boundary, err := settings.Boundary.Boundary()
	if err != nil {
		return err
	}

	scope := string(boundary.Scope())
	if boundary.Unbounded() {
		scope += " (unbounded)"
	}
	cmd.Println(outputStyles.Title.Render("Boundary"))
	printField(cmd, "scope", scope)
	for _, name := range domain.AllSources() {
		state := outputStyles.Success.Render("included")
		if !boundary.Includes(name) {
			state = outputStyles.Muted.Render("excluded")
		}
		printField(cmd, name, state)
	}
	return nil
}

