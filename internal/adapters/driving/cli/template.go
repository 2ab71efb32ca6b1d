package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/tabular"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an input CSV template",
	Long: `Write the CSV header of every recognised input column followed by one
example row. Blank cells fall back to documented defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("out")
		out, closeOut, err := createOutput(cmd, path)
		if err != nil {
			return err
		}
		if err := tabular.WriteTemplate(out); err != nil {
			closeOut() //nolint:errcheck
			return err
		}
		return closeOut()
	},
}

func init() {
	templateCmd.Flags().StringP("out", "o", "", "output path (default stdout)")
	rootCmd.AddCommand(templateCmd)
}
