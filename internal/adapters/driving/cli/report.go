package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/tabular"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect stored batch reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent reports",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored report",
	Long: `Print every entry of a stored report as CSV (or JSON with --format json),
followed by its summary block.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportShow,
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDelete,
}

func init() {
	reportListCmd.Flags().IntP("limit", "n", 20, "maximum number of reports")
	reportShowCmd.Flags().String("format", "csv", "output format: csv or json")
	reportShowCmd.Flags().Bool("summary", false, "print only the summary block")
	reportCmd.AddCommand(reportListCmd, reportShowCmd, reportDeleteCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportList(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return fmt.Errorf("reports: %w", errNotConfigured)
	}
	limit, _ := cmd.Flags().GetInt("limit")

	reports, err := reportService.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	if len(reports) == 0 {
		cmd.Println("No reports stored.")
		return nil
	}

	for _, r := range reports {
		cmd.Printf("%s  %s  %-24s farms=%d ok=%d failed=%d skipped=%d total=%.2f\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Input,
			r.Summary.Processed,
			r.Summary.Succeeded,
			r.Summary.Failed,
			r.Summary.Skipped,
			r.Summary.TotalCO2eqKg,
		)
	}
	return nil
}

func runReportShow(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return fmt.Errorf("reports: %w", errNotConfigured)
	}
	format, _ := cmd.Flags().GetString("format")
	summaryOnly, _ := cmd.Flags().GetBool("summary")

	writer, err := tabular.WriterFor(format)
	if err != nil {
		return err
	}
	report, err := reportService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get report: %w", err)
	}

	out := cmd.OutOrStdout()
	if !summaryOnly {
		if err := writer.WriteEntries(out, report); err != nil {
			return err
		}
		cmd.Println()
	}
	return writer.WriteSummary(out, report)
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return fmt.Errorf("reports: %w", errNotConfigured)
	}
	if err := reportService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	cmd.Printf("Deleted report %s\n", args[0])
	return nil
}
