package domain

// Intensity names.
const (
	IntensityFPCM           = "kg_co2eq_per_kg_fpcm"
	IntensityAreaTotal      = "kg_co2eq_per_ha"
	IntensityAreaProductive = "kg_co2eq_per_productive_ha"
)

// Intensity is a farm total normalised by production or area.
type Intensity struct {
	// Name identifies the metric, e.g. IntensityFPCM.
	Name string `json:"name"`

	// Value is the ratio. Meaningless unless Defined.
	Value float64 `json:"value"`

	// Unit is the human-readable unit.
	Unit string `json:"unit"`

	// Denominator is the production or area figure used.
	Denominator float64 `json:"denominator"`

	// Defined is false when the denominator was zero or missing.
	Defined bool `json:"defined"`

	// Fallback is true when the deriver failed and a simpler ratio was used.
	Fallback bool `json:"fallback,omitempty"`

	// Note explains an undefined or fallback value.
	Note string `json:"note,omitempty"`
}

// UndefinedIntensity returns the sentinel for a zero or missing denominator.
func UndefinedIntensity(name, unit, note string) Intensity {
	return Intensity{Name: name, Unit: unit, Note: note}
}
