package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
)

// Default cascade constants.
const (
	defaultBodyWeightCowsKg    = 550.0
	defaultBodyWeightHeifersKg = 350.0
	defaultBodyWeightCalvesKg  = 150.0
	defaultBodyWeightBullsKg   = 700.0
	defaultYmPercent           = 6.5
	defaultFatPercent          = 4.0
	defaultProteinPercent      = 3.3

	// nExcretionKgPerCow is the tier 1 annual nitrogen excretion of an adult dairy cow.
	nExcretionKgPerCow = 100.0

	// manureNRetained is the share of housed excreta N that survives storage and is applied.
	manureNRetained = 0.7

	// milkDensityKgPerL converts litres to kilograms.
	milkDensityKgPerL = 1.032
)

// Resolver applies the default cascade to farm records and validates the result.
// It holds only read-only defaults and is safe for concurrent use.
type Resolver struct {
	defaults domain.DefaultSettings
}

// NewResolver creates a resolver with the given cascade fallbacks.
func NewResolver(defaults domain.DefaultSettings) *Resolver {
	return &Resolver{defaults: defaults}
}

// Resolve turns a record into model activities. Tier-2 columns fall back to
// tier 1 when absent, body weights fall back to category defaults, and
// climate and manure system fall back to the configured defaults.
// Negative or non-finite quantities and unknown categorical values fail
// with domain.ErrInvalidInput.
func (r *Resolver) Resolve(rec domain.FarmRecord) (domain.ResolvedFarm, error) {
	if err := validateQuantities(rec); err != nil {
		return domain.ResolvedFarm{}, err
	}

	c := &cascade{}
	farm := domain.ResolvedFarm{FarmID: strings.TrimSpace(rec.FarmID)}

	tier := c.int(rec.Tier, r.defaults.Tier, "tier")
	if tier != domain.Tier1 && tier != domain.Tier2 {
		return domain.ResolvedFarm{}, fmt.Errorf("%w: tier %d", domain.ErrInvalidInput, tier)
	}

	climate := domain.Climate(strings.ToLower(c.str(rec.Climate, string(r.defaults.Climate), "climate")))
	if !climate.IsValid() {
		return domain.ResolvedFarm{}, fmt.Errorf("%w: climate %q", domain.ErrInvalidInput, climate)
	}
	system := domain.ManureSystem(strings.ToLower(c.str(rec.ManureSystem, string(r.defaults.ManureSystem), "manure_system")))
	if !system.IsValid() {
		return domain.ResolvedFarm{}, fmt.Errorf("%w: manure_system %q", domain.ErrInvalidInput, system)
	}

	milking := domain.Coalesce(rec.CowsMilking, 0)
	dry := c.float(rec.CowsDry, 0, "cows_dry")
	milkLitres := domain.Coalesce(rec.MilkLitres, 0)

	bwCows := c.float(rec.BodyWeightCowsKg, defaultBodyWeightCowsKg, "body_weight_cows_kg")
	bwDry := c.float(rec.BodyWeightDryKg, bwCows, "body_weight_dry_kg")

	// Tier 2 enteric needs intake; without it the cohort drops to tier 1.
	entericTier := tier
	var dmi, ym float64
	if tier == domain.Tier2 {
		if rec.DMIKgDay == nil {
			entericTier = domain.Tier1
			c.defaulted("dmi_kg_day")
		} else {
			dmi = *rec.DMIKgDay
			ym = c.float(rec.YmPercent, defaultYmPercent, "ym_percent")
		}
	}

	milkYield := 0.0
	if milking > 0 {
		milkYield = milkLitres * milkDensityKgPerL / milking / 365
	}

	farm.Enteric = []domain.EntericActivity{
		{Cohort: domain.CohortMilking, Animals: milking, BodyWeightKg: bwCows, MilkYieldKgDay: milkYield,
			Tier: entericTier, DMIKgDay: dmi, YmPercent: ym},
		{Cohort: domain.CohortDry, Animals: dry, BodyWeightKg: bwDry, Tier: domain.Tier1},
		{Cohort: domain.CohortHeifers, Animals: c.float(rec.Heifers, 0, "heifers"),
			BodyWeightKg: c.float(rec.BodyWeightHeifersKg, defaultBodyWeightHeifersKg, "body_weight_heifers_kg"), Tier: domain.Tier1},
		{Cohort: domain.CohortCalves, Animals: c.float(rec.Calves, 0, "calves"),
			BodyWeightKg: c.float(rec.BodyWeightCalvesKg, defaultBodyWeightCalvesKg, "body_weight_calves_kg"), Tier: domain.Tier1},
		{Cohort: domain.CohortBulls, Animals: c.float(rec.Bulls, 0, "bulls"),
			BodyWeightKg: c.float(rec.BodyWeightBullsKg, defaultBodyWeightBullsKg, "body_weight_bulls_kg"), Tier: domain.Tier1},
	}

	pastureDefault := 0.0
	if system == domain.ManurePasture {
		pastureDefault = 1.0
	}
	pasture := c.float(rec.PastureFraction, pastureDefault, "pasture_fraction")
	if pasture > 1 {
		return domain.ResolvedFarm{}, fmt.Errorf("%w: pasture_fraction %v above 1", domain.ErrInvalidInput, pasture)
	}

	manureTier := tier
	var vs float64
	if tier == domain.Tier2 {
		if rec.VSKgDay == nil {
			manureTier = domain.Tier1
			c.defaulted("vs_kg_day")
		} else {
			vs = *rec.VSKgDay
		}
	}

	adults := milking + dry
	farm.Manure = domain.ManureActivity{
		Animals:         adults,
		BodyWeightKg:    bwCows,
		System:          string(system),
		Climate:         string(climate),
		Tier:            manureTier,
		VSKgDay:         vs,
		PastureFraction: pasture,
	}

	excretedN := adults * nExcretionKgPerCow
	nFertilizer := c.float(rec.NFertilizerKg, 0, "n_fertilizer_kg")
	farm.Soil = domain.SoilActivity{
		NFertilizerKg:     nFertilizer,
		NManureAppliedKg:  c.float(rec.NManureAppliedKg, excretedN*(1-pasture)*manureNRetained, "n_manure_applied_kg"),
		NExcretaPastureKg: excretedN * pasture,
	}

	farm.Energy = domain.EnergyActivity{
		DieselL:        c.float(rec.DieselL, 0, "diesel_l"),
		PetrolL:        c.float(rec.PetrolL, 0, "petrol_l"),
		LPGKg:          c.float(rec.LPGKg, 0, "lpg_kg"),
		NaturalGasM3:   c.float(rec.NaturalGasM3, 0, "natural_gas_m3"),
		ElectricityKWh: c.float(rec.ElectricityKWh, 0, "electricity_kwh"),
		Country:        c.str(rec.Country, r.defaults.Country, "country"),
	}

	farm.Inputs = domain.InputsActivity{
		ConcentrateKg: c.float(rec.ConcentrateKg, 0, "concentrate_kg"),
		GrainDryKg:    c.float(rec.GrainDryKg, 0, "grain_dry_kg"),
		GrainWetKg:    c.float(rec.GrainWetKg, 0, "grain_wet_kg"),
		RationKg:      c.float(rec.RationKg, 0, "ration_kg"),
		ByproductsKg:  c.float(rec.ByproductsKg, 0, "byproducts_kg"),
		ProteinsKg:    c.float(rec.ProteinsKg, 0, "proteins_kg"),
		PlasticKg:     c.float(rec.PlasticKg, 0, "plastic_kg"),
		NFertilizerKg: nFertilizer,
		Region:        c.str(rec.Region, r.defaults.Region, "region"),
	}

	farm.Normalization = domain.NormalizationInputs{
		MilkLitres:       milkLitres,
		FatPercent:       c.float(rec.FatPercent, defaultFatPercent, "fat_percent"),
		ProteinPercent:   c.float(rec.ProteinPercent, defaultProteinPercent, "protein_percent"),
		AreaTotalHa:      domain.Coalesce(rec.AreaTotalHa, 0),
		AreaProductiveHa: domain.Coalesce(rec.AreaProductiveHa, 0),
	}

	percents := map[string]float64{
		"fat_percent":     farm.Normalization.FatPercent,
		"protein_percent": farm.Normalization.ProteinPercent,
		"ym_percent":      ym,
	}
	for field, v := range percents {
		if v > 100 {
			return domain.ResolvedFarm{}, fmt.Errorf("%w: %s %v above 100", domain.ErrInvalidInput, field, v)
		}
	}

	farm.Defaulted = c.fields
	return farm, nil
}

// cascade records which fields fell back to a default.
type cascade struct {
	fields []string
}

func (c *cascade) defaulted(field string) {
	c.fields = append(c.fields, field)
}

func (c *cascade) float(v *float64, def float64, field string) float64 {
	if v == nil {
		c.defaulted(field)
		return def
	}
	return *v
}

func (c *cascade) int(v *int, def int, field string) int {
	if v == nil {
		c.defaulted(field)
		return def
	}
	return *v
}

func (c *cascade) str(v *string, def, field string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		c.defaulted(field)
		return def
	}
	return strings.TrimSpace(*v)
}

// validateQuantities rejects negative or non-finite numbers in any present field.
func validateQuantities(rec domain.FarmRecord) error {
	fields := []struct {
		name string
		v    *float64
	}{
		{"milk_litres", rec.MilkLitres},
		{"cows_milking", rec.CowsMilking},
		{"cows_dry", rec.CowsDry},
		{"heifers", rec.Heifers},
		{"calves", rec.Calves},
		{"bulls", rec.Bulls},
		{"body_weight_cows_kg", rec.BodyWeightCowsKg},
		{"body_weight_dry_kg", rec.BodyWeightDryKg},
		{"body_weight_heifers_kg", rec.BodyWeightHeifersKg},
		{"body_weight_calves_kg", rec.BodyWeightCalvesKg},
		{"body_weight_bulls_kg", rec.BodyWeightBullsKg},
		{"dmi_kg_day", rec.DMIKgDay},
		{"ym_percent", rec.YmPercent},
		{"vs_kg_day", rec.VSKgDay},
		{"fat_percent", rec.FatPercent},
		{"protein_percent", rec.ProteinPercent},
		{"area_total_ha", rec.AreaTotalHa},
		{"area_productive_ha", rec.AreaProductiveHa},
		{"n_fertilizer_kg", rec.NFertilizerKg},
		{"n_manure_applied_kg", rec.NManureAppliedKg},
		{"pasture_fraction", rec.PastureFraction},
		{"diesel_l", rec.DieselL},
		{"petrol_l", rec.PetrolL},
		{"lpg_kg", rec.LPGKg},
		{"natural_gas_m3", rec.NaturalGasM3},
		{"electricity_kwh", rec.ElectricityKWh},
		{"concentrate_kg", rec.ConcentrateKg},
		{"grain_dry_kg", rec.GrainDryKg},
		{"grain_wet_kg", rec.GrainWetKg},
		{"ration_kg", rec.RationKg},
		{"byproducts_kg", rec.ByproductsKg},
		{"proteins_kg", rec.ProteinsKg},
		{"plastic_kg", rec.PlasticKg},
	}

	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if err := domain.CheckQuantity(f.name, *f.v); err != nil {
			return err
		}
	}
	return nil
}
