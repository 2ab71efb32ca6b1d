package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

var assessCmd = &cobra.Command{
	Use:   "assess <input>",
	Short: "Assess a single farm from a CSV or JSON file",
	Long: `Assess one farm-year picked by --farm from the input file and print its
breakdown, total and intensities. Exits non-zero when the farm fails or is
skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	addBoundaryFlags(assessCmd)
	assessCmd.Flags().String("farm", "", "farm_id to assess (required)")
	assessCmd.Flags().Bool("json", false, "output the entry as JSON")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	if engine == nil {
		return fmt.Errorf("engine: %w", errNotConfigured)
	}
	farmID, _ := cmd.Flags().GetString("farm")
	farmID = strings.TrimSpace(farmID)
	if farmID == "" {
		return fmt.Errorf("%w: --farm is required", domain.ErrInvalidInput)
	}

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	assessor, err := engine.Assessor(*settings)
	if err != nil {
		return err
	}

	records, err := readRecords(cmd.Context(), cmd, args[0])
	if err != nil {
		return err
	}
	rec, ok := findFarm(records, farmID)
	if !ok {
		return fmt.Errorf("farm %q in %s: %w", farmID, args[0], domain.ErrNotFound)
	}

	entry, err := assessor.Assess(rec)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal entry: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printEntry(cmd, entry, assessor.Boundary())
	}

	if !entry.Success() {
		return fmt.Errorf("farm %s %s", entry.FarmID, entry.State)
	}
	return nil
}

func findFarm(records []domain.FarmRecord, farmID string) (domain.FarmRecord, bool) {
	for _, r := range records {
		if strings.TrimSpace(r.FarmID) == farmID {
			return r, true
		}
	}
	return domain.FarmRecord{}, false
}
