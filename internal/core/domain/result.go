package domain

import (
	"slices"
	"sort"
)

// Candidate field names probed, in order, when extracting a total.
// Source models and their versions disagree on where the total lives.
var (
	totalFields     = []string{"co2eq_kg", "total_co2eq_kg", "total_co2eq", "total", "emissions_total_kg"}
	breakdownFields = []string{"emissions_breakdown", "co2eq_breakdown", "breakdown", "by_source", "by_gas"}
	amountColumns   = []string{"co2eq_kg", "co2eq", "emissions_kg", "amount", "value"}
	excludedFields  = []string{"excluded", "excluded_by_boundary", "boundary_excluded"}
)

// TotalFields returns the ordered candidate total field names.
func TotalFields() []string {
	return append([]string(nil), totalFields...)
}

// BreakdownFields returns the ordered candidate breakdown field names.
func BreakdownFields() []string {
	return append([]string(nil), breakdownFields...)
}

// AmountColumns returns the ordered candidate amount column names for tabular breakdowns.
func AmountColumns() []string {
	return append([]string(nil), amountColumns...)
}

// SourceResult is the record a source model returns.
// It is not a fixed schema: the total may sit under any of the TotalFields,
// or only a breakdown may be present. A result is immutable once returned.
type SourceResult struct {
	// Source is the explicit source name, if the model set one.
	Source string

	// Type and Category are used to attribute a name when Source is empty.
	Type     string
	Category string

	// Excluded marks a result produced because the boundary excluded the source.
	// Its value is zero by definition, not because true emissions are zero.
	Excluded bool

	// Fields holds candidate total fields by name.
	// A present key with a nil value records an explicit null.
	Fields map[string]*float64

	// Breakdowns holds candidate breakdown fields by name.
	Breakdowns map[string]Breakdown

	// Extra holds every other loosely typed value the model reported.
	Extra map[string]any
}

// Breakdown is a nested amount structure: either a map of sub-amounts
// (which may itself nest) or a table.
type Breakdown struct {
	// Values maps sub-category names to numbers or nested maps.
	Values map[string]any

	// Table is a tabular breakdown, one row per item.
	Table *Table
}

// Table is a column-named tabular structure.
type Table struct {
	// Columns names each cell position.
	Columns []string

	// Rows holds cells aligned with Columns.
	Rows [][]any
}

// Column returns the cells of the named column, or nil if absent.
func (t *Table) Column(name string) []any {
	if t == nil {
		return nil
	}
	for i, col := range t.Columns {
		if col != name {
			continue
		}
		cells := make([]any, 0, len(t.Rows))
		for _, row := range t.Rows {
			if i < len(row) {
				cells = append(cells, row[i])
			}
		}
		return cells
	}
	return nil
}

// ExcludedResult returns the result a model reports for a source outside the boundary.
func ExcludedResult(source string) SourceResult {
	return SourceResult{
		Source:   source,
		Excluded: true,
		Fields:   map[string]*float64{"co2eq_kg": Float(0)},
	}
}

// Total returns the value of a total field and whether it is present and non-null.
func (r SourceResult) Total(field string) (float64, bool) {
	v, ok := r.Fields[field]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// ParseSourceResult decodes a loosely typed record (for example decoded JSON)
// into a SourceResult. Keys matching the candidate lists populate Fields and
// Breakdowns; everything else lands in Extra.
func ParseSourceResult(raw map[string]any) SourceResult {
	r := SourceResult{
		Fields:     make(map[string]*float64),
		Breakdowns: make(map[string]Breakdown),
		Extra:      make(map[string]any),
	}

	for key, val := range raw {
		switch {
		case key == "source":
			r.Source, _ = val.(string)
		case key == "type":
			r.Type, _ = val.(string)
		case key == "category":
			r.Category, _ = val.(string)
		case slices.Contains(excludedFields, key):
			if b, ok := val.(bool); ok && b {
				r.Excluded = true
			}
		case slices.Contains(totalFields, key):
			if val == nil {
				r.Fields[key] = nil
			} else if f, ok := AsFloat(val); ok {
				r.Fields[key] = Float(f)
			} else {
				r.Extra[key] = val
			}
		case slices.Contains(breakdownFields, key):
			if bd, ok := parseBreakdown(val); ok {
				r.Breakdowns[key] = bd
			} else {
				r.Extra[key] = val
			}
		default:
			r.Extra[key] = val
		}
	}

	return r
}

// parseBreakdown recognises three shapes: a list of row objects,
// a map of equal-purpose columns (every value a list), and a nested map.
func parseBreakdown(val any) (Breakdown, bool) {
	switch v := val.(type) {
	case []any:
		return Breakdown{Table: tableFromRows(v)}, true
	case map[string]any:
		if isColumnar(v) {
			return Breakdown{Table: tableFromColumns(v)}, true
		}
		return Breakdown{Values: v}, true
	default:
		return Breakdown{}, false
	}
}

func isColumnar(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for _, v := range m {
		if _, ok := v.([]any); !ok {
			return false
		}
	}
	return true
}

func tableFromRows(rows []any) *Table {
	seen := make(map[string]struct{})
	var cols []string
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for k := range obj {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)

	t := &Table{Columns: cols}
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			continue
		}
		cells := make([]any, len(cols))
		for i, c := range cols {
			cells[i] = obj[c]
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func tableFromColumns(m map[string]any) *Table {
	cols := make([]string, 0, len(m))
	height := 0
	for k, v := range m {
		cols = append(cols, k)
		if n := len(v.([]any)); n > height {
			height = n
		}
	}
	sort.Strings(cols)

	t := &Table{Columns: cols, Rows: make([][]any, height)}
	for r := 0; r < height; r++ {
		cells := make([]any, len(cols))
		for i, c := range cols {
			col := m[c].([]any)
			if r < len(col) {
				cells[i] = col[r]
			}
		}
		t.Rows[r] = cells
	}
	return t
}
