package domain

// Animal cohorts reported to the enteric model. Every cohort is
// attributed to the same "enteric" source and summed on aggregation.
const (
	CohortMilking = "milking_cows"
	CohortDry     = "dry_cows"
	CohortHeifers = "heifers"
	CohortCalves  = "calves"
	CohortBulls   = "bulls"
)

// Activity carries the resolved inputs for one source model call.
// Exactly the section belonging to the called model is set.
type Activity struct {
	Enteric *EntericActivity
	Manure  *ManureActivity
	Soil    *SoilActivity
	Energy  *EnergyActivity
	Inputs  *InputsActivity
}

// EntericActivity describes one animal cohort.
type EntericActivity struct {
	Cohort         string
	Animals        float64
	BodyWeightKg   float64
	MilkYieldKgDay float64
	Tier           int

	// DMIKgDay and YmPercent are tier-2 parameters; zero means not supplied.
	DMIKgDay  float64
	YmPercent float64
}

// IsZero returns true when the cohort has no animals.
func (a EntericActivity) IsZero() bool {
	return a.Animals == 0
}

// ManureActivity describes manure produced by the adult herd.
type ManureActivity struct {
	Animals      float64
	BodyWeightKg float64
	System       string
	Climate      string
	Tier         int

	// VSKgDay is the tier-2 volatile solids excretion; zero means derive it.
	VSKgDay float64

	// PastureFraction is the share of excreta deposited directly on pasture.
	PastureFraction float64
}

// IsZero returns true when no animals produce manure.
func (a ManureActivity) IsZero() bool {
	return a.Animals == 0
}

// SoilActivity describes nitrogen applied to or deposited on soils, in kg N.
type SoilActivity struct {
	NFertilizerKg     float64
	NManureAppliedKg  float64
	NExcretaPastureKg float64
}

// IsZero returns true when no nitrogen reaches the soil.
func (a SoilActivity) IsZero() bool {
	return a.NFertilizerKg == 0 && a.NManureAppliedKg == 0 && a.NExcretaPastureKg == 0
}

// EnergyActivity describes annual on-farm energy use.
type EnergyActivity struct {
	DieselL        float64
	PetrolL        float64
	LPGKg          float64
	NaturalGasM3   float64
	ElectricityKWh float64
	Country        string
}

// IsZero returns true when no energy is used.
func (a EnergyActivity) IsZero() bool {
	return a.DieselL == 0 && a.PetrolL == 0 && a.LPGKg == 0 &&
		a.NaturalGasM3 == 0 && a.ElectricityKWh == 0
}

// InputsActivity describes annual purchased inputs, in kg.
type InputsActivity struct {
	ConcentrateKg float64
	GrainDryKg    float64
	GrainWetKg    float64
	RationKg      float64
	ByproductsKg  float64
	ProteinsKg    float64
	PlasticKg     float64
	NFertilizerKg float64
	Region        string
}

// IsZero returns true when nothing was purchased.
func (a InputsActivity) IsZero() bool {
	return a.ConcentrateKg == 0 && a.GrainDryKg == 0 && a.GrainWetKg == 0 &&
		a.RationKg == 0 && a.ByproductsKg == 0 && a.ProteinsKg == 0 &&
		a.PlasticKg == 0 && a.NFertilizerKg == 0
}

// NormalizationInputs are the production and area figures intensities divide by.
type NormalizationInputs struct {
	MilkLitres       float64
	FatPercent       float64
	ProteinPercent   float64
	AreaTotalHa      float64
	AreaProductiveHa float64
}

// ResolvedFarm is a FarmRecord after the default cascade has been applied.
type ResolvedFarm struct {
	FarmID        string
	Enteric       []EntericActivity
	Manure        ManureActivity
	Soil          SoilActivity
	Energy        EnergyActivity
	Inputs        InputsActivity
	Normalization NormalizationInputs

	// Defaulted lists the fields that fell back to a default.
	Defaulted []string
}
