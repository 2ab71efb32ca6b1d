package intensity

import (
	"fmt"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// UnitArea is the unit of the area intensities.
const UnitArea = "kg CO2eq/ha"

// Ensure Area implements the interface.
var _ driven.IntensityDeriver = (*Area)(nil)

// Area derives emissions per hectare of total or productive farm area.
type Area struct {
	name       string
	productive bool
}

// NewAreaTotal creates the per total hectare deriver.
func NewAreaTotal() *Area {
	return &Area{name: domain.IntensityAreaTotal}
}

// NewAreaProductive creates the per productive hectare deriver.
// Its fallback divides by total area.
func NewAreaProductive() *Area {
	return &Area{name: domain.IntensityAreaProductive, productive: true}
}

// Name returns the intensity name.
func (d *Area) Name() string {
	return d.name
}

// Derive divides the total by the configured area. Productive area larger
// than a known total area is inconsistent and returns an error. A missing
// productive area is replaced by the total area and flagged as a fallback.
func (d *Area) Derive(total float64, in domain.NormalizationInputs) (domain.Intensity, error) {
	if err := domain.CheckQuantity("area_total_ha", in.AreaTotalHa); err != nil {
		return domain.Intensity{}, err
	}

	area := in.AreaTotalHa
	if d.productive {
		if err := domain.CheckQuantity("area_productive_ha", in.AreaProductiveHa); err != nil {
			return domain.Intensity{}, err
		}
		if in.AreaTotalHa > 0 && in.AreaProductiveHa > in.AreaTotalHa {
			return domain.Intensity{}, fmt.Errorf("%w: productive area %v exceeds total area %v",
				domain.ErrInvalidInput, in.AreaProductiveHa, in.AreaTotalHa)
		}
		if in.AreaProductiveHa == 0 && in.AreaTotalHa > 0 {
			i := d.Fallback(total, in)
			i.Fallback = true
			return i, nil
		}
		area = in.AreaProductiveHa
	}

	if area == 0 {
		return domain.UndefinedIntensity(d.name, UnitArea, "no area reported"), nil
	}
	return perHectare(d.name, total, area), nil
}

// Fallback divides by total area for both variants.
func (d *Area) Fallback(total float64, in domain.NormalizationInputs) domain.Intensity {
	if !domain.IsFinite(in.AreaTotalHa) || in.AreaTotalHa <= 0 {
		return domain.UndefinedIntensity(d.name, UnitArea, "no usable total area")
	}
	i := perHectare(d.name, total, in.AreaTotalHa)
	if d.productive {
		i.Note = "total area used in place of productive area"
	}
	return i
}

func perHectare(name string, total, area float64) domain.Intensity {
	return domain.Intensity{
		Name:        name,
		Value:       total / area,
		Unit:        UnitArea,
		Denominator: area,
		Defined:     true,
	}
}
