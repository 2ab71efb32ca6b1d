package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// NA marks a value that was not computed.
const NA = "NA"

// Ensure writers implement the interface.
var (
	_ driven.ReportWriter = (*CSVWriter)(nil)
	_ driven.ReportWriter = (*JSONWriter)(nil)
)

// intensityColumns fixes the order of derived metrics in CSV output.
var intensityColumns = []string{
	domain.IntensityFPCM,
	domain.IntensityAreaTotal,
	domain.IntensityAreaProductive,
}

// WriterFor returns the report writer for a format name.
func WriterFor(format string) (driven.ReportWriter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv", "":
		return NewCSVWriter(), nil
	case "json":
		return NewJSONWriter(), nil
	default:
		return nil, fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, format)
	}
}

// Summary is the serialised summary block of a report.
type Summary struct {
	ID        string              `json:"id" yaml:"id"`
	CreatedAt string              `json:"created_at" yaml:"created_at"`
	Input     string              `json:"input,omitempty" yaml:"input,omitempty"`
	Boundary  domain.BoundarySpec `json:"boundary" yaml:"boundary"`
	Counts    domain.BatchSummary `json:"summary" yaml:"summary"`

	// BySource sums each source over succeeded farms.
	BySource map[string]float64 `json:"by_source_co2eq_kg" yaml:"by_source_co2eq_kg"`
}

// NewSummary builds the summary block for a report.
func NewSummary(report *domain.BatchReport) Summary {
	bySource := make(map[string]float64, len(domain.AllSources()))
	for _, name := range domain.AllSources() {
		bySource[name] = 0
	}
	for _, e := range report.Entries {
		if !e.Success() {
			continue
		}
		for name, v := range e.Breakdown {
			bySource[name] += v
		}
	}
	return Summary{
		ID:        report.ID,
		CreatedAt: report.CreatedAt.UTC().Format(time.RFC3339),
		Input:     report.Input,
		Boundary:  report.Boundary,
		Counts:    report.Summary,
		BySource:  bySource,
	}
}

// CSVWriter writes one row per farm and a YAML summary block.
type CSVWriter struct{}

// NewCSVWriter creates a CSV report writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Format returns "csv".
func (w *CSVWriter) Format() string {
	return "csv"
}

// EntryHeader returns the CSV header row.
func EntryHeader() []string {
	header := []string{"index", "farm_id", "state", "total_co2eq_kg"}
	for _, name := range domain.AllSources() {
		header = append(header, name+"_co2eq_kg")
	}
	header = append(header, intensityColumns...)
	return append(header, "error", "warnings")
}

// WriteEntries writes the header and one row per entry. Numeric cells of
// entries that did not succeed, and undefined intensities, are NA.
func (w *CSVWriter) WriteEntries(out io.Writer, report *domain.BatchReport) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(EntryHeader()); err != nil {
		return err
	}
	for _, e := range report.Entries {
		if err := cw.Write(entryRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func entryRow(e domain.BatchEntry) []string {
	row := []string{strconv.Itoa(e.Index), e.FarmID, e.State.String()}

	ok := e.Success()
	if ok && e.Total != nil {
		row = append(row, formatAmount(*e.Total))
	} else {
		row = append(row, NA)
	}
	for _, name := range domain.AllSources() {
		v, present := e.Breakdown[name]
		if !ok || !present {
			row = append(row, NA)
			continue
		}
		row = append(row, formatAmount(v))
	}
	for _, name := range intensityColumns {
		in, present := e.Intensities[name]
		if !ok || !present || !in.Defined {
			row = append(row, NA)
			continue
		}
		row = append(row, strconv.FormatFloat(in.Value, 'f', 4, 64))
	}
	return append(row, e.Error, strings.Join(e.Warnings, "; "))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteSummary writes the YAML summary block.
func (w *CSVWriter) WriteSummary(out io.Writer, report *domain.BatchReport) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(NewSummary(report)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}

// JSONWriter writes the full report as JSON.
type JSONWriter struct{}

// NewJSONWriter creates a JSON report writer.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Format returns "json".
func (w *JSONWriter) Format() string {
	return "json"
}

// WriteEntries writes the whole report, entries included.
func (w *JSONWriter) WriteEntries(out io.Writer, report *domain.BatchReport) error {
	return writeJSON(out, report)
}

// WriteSummary writes the summary block as JSON.
func (w *JSONWriter) WriteSummary(out io.Writer, report *domain.BatchReport) error {
	return writeJSON(out, NewSummary(report))
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteTemplate writes the input header and one example row.
func WriteTemplate(out io.Writer) error {
	cw := csv.NewWriter(out)
	example := make([]string, len(columns))
	for i, c := range columns {
		example[i] = c.example
	}
	if err := cw.Write(Columns()); err != nil {
		return err
	}
	if err := cw.Write(example); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
