package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dairyghg/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

var outputStyles = styles.DefaultStyles()

func printField(cmd *cobra.Command, label, value string) {
	cmd.Println(outputStyles.Label.Render(label) + outputStyles.Value.Render(value))
}

func formatKg(v float64) string {
	return fmt.Sprintf("%.2f kg CO2eq", v)
}

// printSummary renders the counts of a finished run.
func printSummary(cmd *cobra.Command, report *domain.BatchReport) {
	s := report.Summary
	cmd.Println(outputStyles.Title.Render("Run " + report.ID))
	printField(cmd, "Boundary", describeBoundary(report.Boundary))
	printField(cmd, "Farms", fmt.Sprintf("%d", s.Processed))
	printField(cmd, "Succeeded", outputStyles.Success.Render(fmt.Sprintf("%d", s.Succeeded)))
	printField(cmd, "Failed", outputStyles.Error.Render(fmt.Sprintf("%d", s.Failed)))
	printField(cmd, "Skipped", outputStyles.Warning.Render(fmt.Sprintf("%d", s.Skipped)))
	printField(cmd, "Total", formatKg(s.TotalCO2eqKg))
}

func describeBoundary(spec domain.BoundarySpec) string {
	if len(spec.Include) == 0 {
		return string(spec.Scope)
	}
	return fmt.Sprintf("%s (%s)", spec.Scope, strings.Join(spec.Include, ", "))
}

// printEntry renders one farm outcome.
func printEntry(cmd *cobra.Command, e domain.BatchEntry, boundary domain.Boundary) {
	cmd.Println(outputStyles.Title.Render("Farm " + e.FarmID))
	printField(cmd, "State", outputStyles.State(e.State).Render(e.State.String()))
	if e.Error != "" {
		printField(cmd, "Error", outputStyles.Error.Render(e.Error))
	}

	if e.Success() {
		if e.Total != nil {
			printField(cmd, "Total", formatKg(*e.Total))
		}
		for _, name := range domain.AllSources() {
			value := formatKg(e.Breakdown[name])
			if !boundary.Includes(name) {
				value += outputStyles.Muted.Render(" (excluded)")
			}
			printField(cmd, "  "+name, value)
		}

		names := make([]string, 0, len(e.Intensities))
		for name := range e.Intensities {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printField(cmd, "  "+name, formatIntensity(e.Intensities[name]))
		}
	}

	for _, w := range e.Warnings {
		cmd.Println(outputStyles.Warning.Render("warning: " + w))
	}
}

func formatIntensity(in domain.Intensity) string {
	if !in.Defined {
		return "NA " + outputStyles.Muted.Render(in.Note)
	}
	s := fmt.Sprintf("%.4f %s", in.Value, in.Unit)
	if in.Fallback {
		s += outputStyles.Muted.Render(" (fallback: " + in.Note + ")")
	}
	return s
}
