package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// column binds one input header to a FarmRecord field.
type column struct {
	name    string
	example string
	numeric bool
	set     func(rec *domain.FarmRecord, cell string) error
}

// missingMarkers are numeric cell values meaning "no value".
var missingMarkers = []string{"na", "n/a", "null"}

func isMissing(cell string) bool {
	for _, m := range missingMarkers {
		if strings.EqualFold(cell, m) {
			return true
		}
	}
	return false
}

func floatColumn(name, example string, field func(*domain.FarmRecord) **float64) column {
	return column{
		name:    name,
		example: example,
		numeric: true,
		set: func(rec *domain.FarmRecord, cell string) error {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return fmt.Errorf("%s: not a number (%q)", name, cell)
			}
			*field(rec) = &v
			return nil
		},
	}
}

func intColumn(name, example string, field func(*domain.FarmRecord) **int) column {
	return column{
		name:    name,
		example: example,
		numeric: true,
		set: func(rec *domain.FarmRecord, cell string) error {
			v, err := strconv.Atoi(cell)
			if err != nil {
				return fmt.Errorf("%s: not an integer (%q)", name, cell)
			}
			*field(rec) = &v
			return nil
		},
	}
}

func stringColumn(name, example string, field func(*domain.FarmRecord) **string) column {
	return column{
		name:    name,
		example: example,
		set: func(rec *domain.FarmRecord, cell string) error {
			*field(rec) = &cell
			return nil
		},
	}
}

// columns is the input schema in template order.
var columns = []column{
	{
		name:    "farm_id",
		example: "farm-001",
		set: func(rec *domain.FarmRecord, cell string) error {
			rec.FarmID = cell
			return nil
		},
	},
	intColumn("year", "2024", func(r *domain.FarmRecord) **int { return &r.Year }),
	floatColumn("milk_litres", "730000", func(r *domain.FarmRecord) **float64 { return &r.MilkLitres }),
	floatColumn("cows_milking", "100", func(r *domain.FarmRecord) **float64 { return &r.CowsMilking }),
	floatColumn("cows_dry", "15", func(r *domain.FarmRecord) **float64 { return &r.CowsDry }),
	floatColumn("heifers", "30", func(r *domain.FarmRecord) **float64 { return &r.Heifers }),
	floatColumn("calves", "25", func(r *domain.FarmRecord) **float64 { return &r.Calves }),
	floatColumn("bulls", "1", func(r *domain.FarmRecord) **float64 { return &r.Bulls }),
	floatColumn("body_weight_cows_kg", "550", func(r *domain.FarmRecord) **float64 { return &r.BodyWeightCowsKg }),
	floatColumn("body_weight_dry_kg", "550", func(r *domain.FarmRecord) **float64 { return &r.BodyWeightDryKg }),
	floatColumn("body_weight_heifers_kg", "350", func(r *domain.FarmRecord) **float64 { return &r.BodyWeightHeifersKg }),
	floatColumn("body_weight_calves_kg", "150", func(r *domain.FarmRecord) **float64 { return &r.BodyWeightCalvesKg }),
	floatColumn("body_weight_bulls_kg", "700", func(r *domain.FarmRecord) **float64 { return &r.BodyWeightBullsKg }),
	intColumn("tier", "1", func(r *domain.FarmRecord) **int { return &r.Tier }),
	floatColumn("dmi_kg_day", "", func(r *domain.FarmRecord) **float64 { return &r.DMIKgDay }),
	floatColumn("ym_percent", "", func(r *domain.FarmRecord) **float64 { return &r.YmPercent }),
	floatColumn("vs_kg_day", "", func(r *domain.FarmRecord) **float64 { return &r.VSKgDay }),
	floatColumn("fat_percent", "4.0", func(r *domain.FarmRecord) **float64 { return &r.FatPercent }),
	floatColumn("protein_percent", "3.3", func(r *domain.FarmRecord) **float64 { return &r.ProteinPercent }),
	floatColumn("area_total_ha", "120", func(r *domain.FarmRecord) **float64 { return &r.AreaTotalHa }),
	floatColumn("area_productive_ha", "110", func(r *domain.FarmRecord) **float64 { return &r.AreaProductiveHa }),
	floatColumn("n_fertilizer_kg", "5000", func(r *domain.FarmRecord) **float64 { return &r.NFertilizerKg }),
	floatColumn("n_manure_applied_kg", "", func(r *domain.FarmRecord) **float64 { return &r.NManureAppliedKg }),
	floatColumn("pasture_fraction", "", func(r *domain.FarmRecord) **float64 { return &r.PastureFraction }),
	floatColumn("diesel_l", "1800", func(r *domain.FarmRecord) **float64 { return &r.DieselL }),
	floatColumn("petrol_l", "0", func(r *domain.FarmRecord) **float64 { return &r.PetrolL }),
	floatColumn("lpg_kg", "0", func(r *domain.FarmRecord) **float64 { return &r.LPGKg }),
	floatColumn("natural_gas_m3", "0", func(r *domain.FarmRecord) **float64 { return &r.NaturalGasM3 }),
	floatColumn("electricity_kwh", "40000", func(r *domain.FarmRecord) **float64 { return &r.ElectricityKWh }),
	stringColumn("country", "ie", func(r *domain.FarmRecord) **string { return &r.Country }),
	floatColumn("concentrate_kg", "5000", func(r *domain.FarmRecord) **float64 { return &r.ConcentrateKg }),
	floatColumn("grain_dry_kg", "0", func(r *domain.FarmRecord) **float64 { return &r.GrainDryKg }),
	floatColumn("grain_wet_kg", "0", func(r *domain.FarmRecord) **float64 { return &r.GrainWetKg }),
	floatColumn("ration_kg", "0", func(r *domain.FarmRecord) **float64 { return &r.RationKg }),
	floatColumn("byproducts_kg", "0", func(r *domain.FarmRecord) **float64 { return &r.ByproductsKg }),
	floatColumn("proteins_kg", "0", func(r *domain.FarmRecord) **float64 { return &r.ProteinsKg }),
	floatColumn("plastic_kg", "200", func(r *domain.FarmRecord) **float64 { return &r.PlasticKg }),
	stringColumn("region", "europe", func(r *domain.FarmRecord) **string { return &r.Region }),
	stringColumn("manure_system", "pasture", func(r *domain.FarmRecord) **string { return &r.ManureSystem }),
	stringColumn("climate", "temperate", func(r *domain.FarmRecord) **string { return &r.Climate }),
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c.name] = i
	}
	return idx
}()

// Columns returns the input column names in template order.
func Columns() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

// lookupColumn matches a header case-insensitively, ignoring surrounding
// whitespace and a UTF-8 byte order mark.
func lookupColumn(header string) (column, bool) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	i, ok := columnIndex[key]
	if !ok {
		return column{}, false
	}
	return columns[i], true
}

// setCell decodes one cell into rec. Blank cells, and NA or null in numeric
// columns, leave the field unset; decode failures are appended to rec.ParseErrors.
func setCell(rec *domain.FarmRecord, col column, cell string) {
	cell = strings.TrimSpace(cell)
	if cell == "" || (col.numeric && isMissing(cell)) {
		return
	}
	if err := col.set(rec, cell); err != nil {
		rec.ParseErrors = append(rec.ParseErrors, err.Error())
	}
}
