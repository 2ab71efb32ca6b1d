package domain

import (
	"fmt"
	"strings"
)

// FarmRecord is one farm-year of input data.
// FarmID, MilkLitres and CowsMilking are required; every other field is
// optional and falls back to a documented default during resolution.
// A FarmRecord is read once per batch entry and never mutated.
type FarmRecord struct {
	// Row is the zero-based position of the record in its input.
	Row int `json:"-"`

	// ParseErrors lists cells the reader could not decode.
	ParseErrors []string `json:"-"`

	FarmID      string   `json:"farm_id"`
	Year        *int     `json:"year,omitempty"`
	MilkLitres  *float64 `json:"milk_litres,omitempty"`
	CowsMilking *float64 `json:"cows_milking,omitempty"`

	// Herd composition and body weights.
	CowsDry             *float64 `json:"cows_dry,omitempty"`
	Heifers             *float64 `json:"heifers,omitempty"`
	Calves              *float64 `json:"calves,omitempty"`
	Bulls               *float64 `json:"bulls,omitempty"`
	BodyWeightCowsKg    *float64 `json:"body_weight_cows_kg,omitempty"`
	BodyWeightDryKg     *float64 `json:"body_weight_dry_kg,omitempty"`
	BodyWeightHeifersKg *float64 `json:"body_weight_heifers_kg,omitempty"`
	BodyWeightCalvesKg  *float64 `json:"body_weight_calves_kg,omitempty"`
	BodyWeightBullsKg   *float64 `json:"body_weight_bulls_kg,omitempty"`

	// Feed and intake. DMI, Ym and VS are tier-2 parameters.
	Tier           *int     `json:"tier,omitempty"`
	DMIKgDay       *float64 `json:"dmi_kg_day,omitempty"`
	YmPercent      *float64 `json:"ym_percent,omitempty"`
	VSKgDay        *float64 `json:"vs_kg_day,omitempty"`
	FatPercent     *float64 `json:"fat_percent,omitempty"`
	ProteinPercent *float64 `json:"protein_percent,omitempty"`

	// Land use and nitrogen.
	AreaTotalHa      *float64 `json:"area_total_ha,omitempty"`
	AreaProductiveHa *float64 `json:"area_productive_ha,omitempty"`
	NFertilizerKg    *float64 `json:"n_fertilizer_kg,omitempty"`
	NManureAppliedKg *float64 `json:"n_manure_applied_kg,omitempty"`
	PastureFraction  *float64 `json:"pasture_fraction,omitempty"`

	// Energy by fuel type.
	DieselL        *float64 `json:"diesel_l,omitempty"`
	PetrolL        *float64 `json:"petrol_l,omitempty"`
	LPGKg          *float64 `json:"lpg_kg,omitempty"`
	NaturalGasM3   *float64 `json:"natural_gas_m3,omitempty"`
	ElectricityKWh *float64 `json:"electricity_kwh,omitempty"`
	Country        *string  `json:"country,omitempty"`

	// Purchased inputs.
	ConcentrateKg *float64 `json:"concentrate_kg,omitempty"`
	GrainDryKg    *float64 `json:"grain_dry_kg,omitempty"`
	GrainWetKg    *float64 `json:"grain_wet_kg,omitempty"`
	RationKg      *float64 `json:"ration_kg,omitempty"`
	ByproductsKg  *float64 `json:"byproducts_kg,omitempty"`
	ProteinsKg    *float64 `json:"proteins_kg,omitempty"`
	PlasticKg     *float64 `json:"plastic_kg,omitempty"`
	Region        *string  `json:"region,omitempty"`

	// Manure system descriptors.
	ManureSystem *string `json:"manure_system,omitempty"`
	Climate      *string `json:"climate,omitempty"`
}

// CheckStructure reports whether the record can enter computation at all.
// It returns an error wrapping ErrSkipped when a required field is missing
// or a cell could not be decoded. Values are not range-checked here.
func (f FarmRecord) CheckStructure() error {
	var problems []string
	if strings.TrimSpace(f.FarmID) == "" {
		problems = append(problems, "missing farm_id")
	}
	if f.MilkLitres == nil {
		problems = append(problems, "missing milk_litres")
	}
	if f.CowsMilking == nil {
		problems = append(problems, "missing cows_milking")
	}
	problems = append(problems, f.ParseErrors...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrSkipped, strings.Join(problems, "; "))
	}
	return nil
}

// Label identifies the record in logs, even when FarmID is blank.
func (f FarmRecord) Label() string {
	if id := strings.TrimSpace(f.FarmID); id != "" {
		return id
	}
	return fmt.Sprintf("row %d", f.Row+1)
}
