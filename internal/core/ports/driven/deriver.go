package driven

import "github.com/custodia-labs/dairyghg/internal/core/domain"

// IntensityDeriver normalises a farm total by a production or area figure.
type IntensityDeriver interface {
	// Name returns the intensity name produced (e.g. domain.IntensityFPCM).
	Name() string

	// Derive computes the intensity. A zero or missing denominator yields
	// an undefined intensity, not an error. Errors are reserved for inputs
	// the deriver cannot interpret.
	Derive(total float64, in domain.NormalizationInputs) (domain.Intensity, error)

	// Fallback computes the documented simpler ratio used when Derive fails.
	Fallback(total float64, in domain.NormalizationInputs) domain.Intensity
}
