package intensity

import (
	"fmt"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
)

// IDF fat- and protein-corrected milk coefficients.
const (
	fpcmFat      = 0.1226
	fpcmProtein  = 0.0776
	fpcmConstant = 0.2534
)

// MilkDensityKgPerL converts milk litres to kilograms.
const MilkDensityKgPerL = 1.032

// UnitFPCM is the unit of the FPCM intensity.
const UnitFPCM = "kg CO2eq/kg FPCM"

// Ensure FPCM implements the interface.
var _ driven.IntensityDeriver = (*FPCM)(nil)

// FPCM derives emissions per kg of fat- and protein-corrected milk.
type FPCM struct{}

// NewFPCM creates the FPCM deriver.
func NewFPCM() *FPCM {
	return &FPCM{}
}

// Name returns the intensity name.
func (d *FPCM) Name() string {
	return domain.IntensityFPCM
}

// Derive corrects milk to FPCM: kg milk x (0.1226 fat% + 0.0776 protein% + 0.2534).
// Fat and protein must be percentages in [0, 100].
func (d *FPCM) Derive(total float64, in domain.NormalizationInputs) (domain.Intensity, error) {
	milkKg, err := milkKg(in)
	if err != nil {
		return domain.Intensity{}, err
	}
	if milkKg == 0 {
		return domain.UndefinedIntensity(d.Name(), UnitFPCM, "no milk production"), nil
	}

	for field, v := range map[string]float64{"fat_percent": in.FatPercent, "protein_percent": in.ProteinPercent} {
		if err := domain.CheckQuantity(field, v); err != nil {
			return domain.Intensity{}, err
		}
		if v > 100 {
			return domain.Intensity{}, fmt.Errorf("%w: %s %v above 100", domain.ErrInvalidInput, field, v)
		}
	}

	fpcm := milkKg * (fpcmFat*in.FatPercent + fpcmProtein*in.ProteinPercent + fpcmConstant)
	return domain.Intensity{
		Name:        d.Name(),
		Value:       total / fpcm,
		Unit:        UnitFPCM,
		Denominator: fpcm,
		Defined:     true,
	}, nil
}

// Fallback divides by uncorrected milk mass.
func (d *FPCM) Fallback(total float64, in domain.NormalizationInputs) domain.Intensity {
	milkKg, err := milkKg(in)
	if err != nil || milkKg == 0 {
		return domain.UndefinedIntensity(d.Name(), UnitFPCM, "no usable milk production")
	}
	return domain.Intensity{
		Name:        d.Name(),
		Value:       total / milkKg,
		Unit:        UnitFPCM,
		Denominator: milkKg,
		Defined:     true,
		Note:        "uncorrected milk mass",
	}
}

func milkKg(in domain.NormalizationInputs) (float64, error) {
	if err := domain.CheckQuantity("milk_litres", in.MilkLitres); err != nil {
		return 0, err
	}
	return in.MilkLitres * MilkDensityKgPerL, nil
}
