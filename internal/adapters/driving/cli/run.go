package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/adapters/driven/tabular"
	"github.com/custodia-labs/dairyghg/internal/adapters/driving/tui"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
	"github.com/custodia-labs/dairyghg/internal/logger"
)

var runCmd = &cobra.Command{
	Use:   "run <input>",
	Short: "Assess every farm in a CSV or JSON file",
	Long: `Assess every farm-year in the input file with per-farm failure isolation.

The input is CSV (one row per farm-year, see 'dairyghg template') or a JSON
array of objects with the same keys. Use - to read CSV from stdin.

Entries are written as CSV (or JSON) to --out, stdout by default. The
summary block is written to --summary when given; otherwise it is printed
after the entries, or to stderr when the entries go to stdout.

Examples:
  dairyghg run farms.csv -o results.csv
  dairyghg run farms.csv --scope partial --include enteric,manure
  dairyghg run farms.json --format json --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	addBoundaryFlags(runCmd)
	runCmd.Flags().Int("workers", 0, "parallel farms (0 = configured value)")
	runCmd.Flags().StringP("out", "o", "", "entries output path (default stdout)")
	runCmd.Flags().String("format", "", "entries format: csv or json (default from --out extension)")
	runCmd.Flags().String("summary", "", "summary output path")
	runCmd.Flags().Bool("progress", true, "show an interactive progress bar when stderr is a terminal")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if engine == nil {
		return fmt.Errorf("engine: %w", errNotConfigured)
	}
	input := args[0]
	ctx := cmd.Context()

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	runner, err := engine.Runner(*settings)
	if err != nil {
		return err
	}

	records, err := readRecords(ctx, cmd, input)
	if err != nil {
		return err
	}
	logger.Info("read %d records from %s", len(records), input)

	opts := driving.RunOptions{
		Input: input,
		Progress: func(e domain.BatchEntry) {
			logger.Farm(e.FarmID, "%s", e.State)
		},
	}

	var report *domain.BatchReport
	var runErr error
	showProgress, _ := cmd.Flags().GetBool("progress")
	if showProgress && tui.IsTerminal(os.Stderr) && !logger.IsVerbose() {
		report, runErr = tui.RunBatch(ctx, runner, records, opts, os.Stdin, os.Stderr)
	} else {
		report, runErr = runner.Run(ctx, records, opts)
	}
	if report == nil {
		return runErr
	}

	if err := writeRunOutput(cmd, report); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func writeRunOutput(cmd *cobra.Command, report *domain.BatchReport) error {
	outPath, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	summaryPath, _ := cmd.Flags().GetString("summary")

	writer, err := tabular.WriterFor(formatFor(format, outPath))
	if err != nil {
		return err
	}

	out, closeOut, err := createOutput(cmd, outPath)
	if err != nil {
		return err
	}
	if err := writer.WriteEntries(out, report); err != nil {
		closeOut() //nolint:errcheck
		return fmt.Errorf("write entries: %w", err)
	}
	if err := closeOut(); err != nil {
		return err
	}

	switch {
	case summaryPath != "":
		sum, closeSum, err := createOutput(cmd, summaryPath)
		if err != nil {
			return err
		}
		if err := writer.WriteSummary(sum, report); err != nil {
			closeSum() //nolint:errcheck
			return fmt.Errorf("write summary: %w", err)
		}
		return closeSum()
	case outPath == "" || outPath == "-":
		return writer.WriteSummary(cmd.ErrOrStderr(), report)
	default:
		printSummary(cmd, report)
		return nil
	}
}
