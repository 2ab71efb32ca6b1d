package domain

import "strings"

// Emission source names. These are the keys of every farm breakdown.
const (
	// SourceEnteric is methane from enteric fermentation.
	SourceEnteric = "enteric"

	// SourceManure is methane and nitrous oxide from manure management.
	SourceManure = "manure"

	// SourceSoil is direct and indirect nitrous oxide from managed soils.
	SourceSoil = "soil"

	// SourceEnergy is carbon dioxide from on-farm fuel and electricity use.
	SourceEnergy = "energy"

	// SourceInputs is embedded CO2eq of purchased feed, fertiliser and plastics.
	SourceInputs = "inputs"
)

// AllSources returns every emission source in reporting order.
func AllSources() []string {
	return []string{SourceEnteric, SourceManure, SourceSoil, SourceEnergy, SourceInputs}
}

// IsKnownSource returns true if name is one of the five emission sources.
func IsKnownSource(name string) bool {
	switch strings.TrimSpace(name) {
	case SourceEnteric, SourceManure, SourceSoil, SourceEnergy, SourceInputs:
		return true
	default:
		return false
	}
}
