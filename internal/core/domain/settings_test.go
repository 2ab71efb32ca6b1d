package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClimate_IsValid(t *testing.T) {
	assert.True(t, ClimateCold.IsValid())
	assert.True(t, ClimateTemperate.IsValid())
	assert.True(t, ClimateWarm.IsValid())
	assert.False(t, Climate("tropical").IsValid())
}

func TestManureSystem_IsValid(t *testing.T) {
	for _, m := range []ManureSystem{
		ManurePasture, ManureSolidStorage, ManureLiquidStorage, ManureDailySpread, ManureAnaerobicDigester,
	} {
		assert.True(t, m.IsValid(), m)
		assert.NotEqual(t, unknownDescription, m.Description())
	}
	assert.False(t, ManureSystem("lagoon").IsValid())
	assert.Equal(t, unknownDescription, ManureSystem("lagoon").Description())
}

func TestDefaultAssessmentSettings(t *testing.T) {
	s := DefaultAssessmentSettings()

	assert.NoError(t, s.Validate())
	assert.Equal(t, ScopeFull, s.Boundary.Scope)
	assert.Equal(t, 27.2, s.Factors.GWPCH4)
	assert.Equal(t, 273.0, s.Factors.GWPN2O)
	assert.Equal(t, ClimateTemperate, s.Defaults.Climate)
	assert.Equal(t, ManurePasture, s.Defaults.ManureSystem)
	assert.Equal(t, Tier1, s.Defaults.Tier)
}

func TestAssessmentSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AssessmentSettings)
	}{
		{"bad boundary", func(s *AssessmentSettings) { s.Boundary = BoundarySpec{Scope: ScopePartial} }},
		{"zero workers", func(s *AssessmentSettings) { s.Workers = 0 }},
		{"zero gwp", func(s *AssessmentSettings) { s.Factors.GWPN2O = 0 }},
		{"bad climate", func(s *AssessmentSettings) { s.Defaults.Climate = "arid" }},
		{"bad system", func(s *AssessmentSettings) { s.Defaults.ManureSystem = "pond" }},
		{"bad tier", func(s *AssessmentSettings) { s.Defaults.Tier = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAssessmentSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestAssessmentSettings_OverrideBoundary(t *testing.T) {
	s := DefaultAssessmentSettings()
	s.Boundary.Include = []string{SourceSoil}

	s.OverrideBoundary("", nil)
	assert.Equal(t, BoundarySpec{Scope: ScopeFull, Include: []string{SourceSoil}}, s.Boundary)

	s.OverrideBoundary(" Partial ", []string{" enteric", "", "manure "})
	assert.Equal(t, BoundarySpec{Scope: ScopePartial, Include: []string{SourceEnteric, SourceManure}}, s.Boundary)

	s.OverrideBoundary("", []string{" "})
	assert.Equal(t, []string{SourceEnteric, SourceManure}, s.Boundary.Include)

	// Overriding to full without names is unbounded.
	s.OverrideBoundary("full", []string{" "})
	assert.Equal(t, BoundarySpec{Scope: ScopeFull}, s.Boundary)

	s.Boundary = BoundarySpec{Scope: ScopePartial, Include: []string{SourceSoil}}
	s.OverrideBoundary("FULL", []string{SourceEnergy})
	assert.Equal(t, BoundarySpec{Scope: ScopeFull, Include: []string{SourceEnergy}}, s.Boundary)
}
