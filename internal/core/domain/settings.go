package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// Climate is the climate zone used for manure methane conversion.
type Climate string

// Available climates.
const (
	ClimateCold      Climate = "cold"
	ClimateTemperate Climate = "temperate"
	ClimateWarm      Climate = "warm"
)

// IsValid returns true if the climate is recognised.
func (c Climate) IsValid() bool {
	switch c {
	case ClimateCold, ClimateTemperate, ClimateWarm:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Climate) String() string {
	return string(c)
}

// ManureSystem is the dominant manure management system.
type ManureSystem string

// Available manure systems.
const (
	// ManurePasture is excreta deposited on pasture, range and paddock.
	ManurePasture ManureSystem = "pasture"

	// ManureSolidStorage is stacked solid manure.
	ManureSolidStorage ManureSystem = "solid_storage"

	// ManureLiquidStorage is slurry or lagoon storage.
	ManureLiquidStorage ManureSystem = "liquid_storage"

	// ManureDailySpread is manure spread on fields daily.
	ManureDailySpread ManureSystem = "daily_spread"

	// ManureAnaerobicDigester is biogas digestion.
	ManureAnaerobicDigester ManureSystem = "anaerobic_digester"
)

// IsValid returns true if the manure system is recognised.
func (m ManureSystem) IsValid() bool {
	switch m {
	case ManurePasture, ManureSolidStorage, ManureLiquidStorage, ManureDailySpread, ManureAnaerobicDigester:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ManureSystem) String() string {
	return string(m)
}

// Description returns a human-readable description of the system.
func (m ManureSystem) Description() string {
	switch m {
	case ManurePasture:
		return "Pasture, range and paddock"
	case ManureSolidStorage:
		return "Solid storage"
	case ManureLiquidStorage:
		return "Liquid / slurry storage"
	case ManureDailySpread:
		return "Daily spread"
	case ManureAnaerobicDigester:
		return "Anaerobic digester"
	default:
		return unknownDescription
	}
}

// Methodological tiers.
const (
	Tier1 = 1
	Tier2 = 2
)

// FactorSettings holds global warming potentials (100-year horizon).
type FactorSettings struct {
	GWPCH4 float64
	GWPN2O float64
}

// DefaultSettings holds the fallbacks of the default cascade.
type DefaultSettings struct {
	Climate      Climate
	ManureSystem ManureSystem
	Tier         int
	Country      string
	Region       string
}

// AssessmentSettings holds the process-wide configuration of an assessment.
type AssessmentSettings struct {
	Boundary BoundarySpec
	Workers  int
	Factors  FactorSettings
	Defaults DefaultSettings
}

// DefaultAssessmentSettings returns the settings used when nothing is configured.
func DefaultAssessmentSettings() AssessmentSettings {
	return AssessmentSettings{
		Boundary: BoundarySpec{Scope: ScopeFull},
		Workers:  4,
		Factors: FactorSettings{
			GWPCH4: 27.2,
			GWPN2O: 273,
		},
		Defaults: DefaultSettings{
			Climate:      ClimateTemperate,
			ManureSystem: ManurePasture,
			Tier:         Tier1,
			Country:      "default",
			Region:       "global",
		},
	}
}

// Validate checks that settings are usable.
func (s AssessmentSettings) Validate() error {
	if _, err := s.Boundary.Boundary(); err != nil {
		return err
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidInput, s.Workers)
	}
	if s.Factors.GWPCH4 <= 0 || s.Factors.GWPN2O <= 0 {
		return fmt.Errorf("%w: global warming potentials must be positive", ErrInvalidInput)
	}
	if !s.Defaults.Climate.IsValid() {
		return fmt.Errorf("%w: climate %q", ErrInvalidInput, s.Defaults.Climate)
	}
	if !s.Defaults.ManureSystem.IsValid() {
		return fmt.Errorf("%w: manure system %q", ErrInvalidInput, s.Defaults.ManureSystem)
	}
	if s.Defaults.Tier != Tier1 && s.Defaults.Tier != Tier2 {
		return fmt.Errorf("%w: tier %d", ErrInvalidInput, s.Defaults.Tier)
	}
	return nil
}

// OverrideBoundary replaces the scope and/or include list where given.
// Blank entries in include are ignored; an empty include keeps the stored
// list, except that overriding the scope to full clears it (unbounded).
func (s *AssessmentSettings) OverrideBoundary(scope string, include []string) {
	var names []string
	for _, name := range include {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	if scope = strings.TrimSpace(scope); scope != "" {
		s.Boundary.Scope = Scope(strings.ToLower(scope))
		if s.Boundary.Scope == ScopeFull && len(names) == 0 {
			s.Boundary.Include = nil
		}
	}
	if len(names) > 0 {
		s.Boundary.Include = names
	}
}
