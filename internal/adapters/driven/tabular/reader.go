package tabular

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/logger"
)

// Ensure readers implement the interface.
var (
	_ driven.FarmReader = (*CSVReader)(nil)
	_ driven.FarmReader = (*JSONReader)(nil)
)

// ReaderFor picks a reader from the file extension.
func ReaderFor(path string) (driven.FarmReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVReader(), nil
	case ".json":
		return NewJSONReader(), nil
	default:
		return nil, fmt.Errorf("%w: input format %q", domain.ErrUnsupportedType, filepath.Ext(path))
	}
}

// CSVReader decodes one farm-year per CSV row. The first row is the header;
// columns may appear in any order and unknown columns are ignored.
type CSVReader struct{}

// NewCSVReader creates a CSV farm reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Format returns "csv".
func (r *CSVReader) Format() string {
	return "csv"
}

// Read decodes every data row. Malformed rows become records carrying a
// parse error so they are skipped rather than aborting the batch.
func (r *CSVReader) Read(ctx context.Context, in io.Reader) ([]domain.FarmRecord, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make([]*column, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		col, ok := lookupColumn(h)
		if !ok {
			logger.Debug("csv: ignoring unknown column %q", h)
			continue
		}
		if seen[col.name] {
			return nil, fmt.Errorf("%w: duplicate column %q", domain.ErrInvalidInput, col.name)
		}
		seen[col.name] = true
		cols[i] = &col
	}

	var records []domain.FarmRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rec := domain.FarmRecord{Row: len(records)}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			rec.ParseErrors = append(rec.ParseErrors, perr.Error())
			records = append(records, rec)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if len(row) > len(cols) {
			rec.ParseErrors = append(rec.ParseErrors,
				fmt.Sprintf("row has %d cells, header has %d", len(row), len(cols)))
		}
		for i, cell := range row {
			if i >= len(cols) || cols[i] == nil {
				continue
			}
			setCell(&rec, *cols[i], cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

// JSONReader decodes a JSON array of objects keyed by column name.
// Numbers may be given as JSON numbers or strings; null means absent.
type JSONReader struct{}

// NewJSONReader creates a JSON farm reader.
func NewJSONReader() *JSONReader {
	return &JSONReader{}
}

// Format returns "json".
func (r *JSONReader) Format() string {
	return "json"
}

// Read decodes every object in the array.
func (r *JSONReader) Read(ctx context.Context, in io.Reader) ([]domain.FarmRecord, error) {
	dec := json.NewDecoder(in)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read json: %w", err)
	}

	records := make([]domain.FarmRecord, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = append(records, decodeObject(i, row))
	}
	return records, nil
}

func decodeObject(index int, row map[string]any) domain.FarmRecord {
	rec := domain.FarmRecord{Row: index}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		col, ok := lookupColumn(key)
		if !ok {
			logger.Debug("json: ignoring unknown field %q", key)
			continue
		}
		switch v := row[key].(type) {
		case nil:
		case json.Number:
			setCell(&rec, col, v.String())
		case string:
			setCell(&rec, col, v)
		default:
			rec.ParseErrors = append(rec.ParseErrors, fmt.Sprintf("%s: unsupported value %v", col.name, v))
		}
	}
	return rec
}
