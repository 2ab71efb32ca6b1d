package driving

import "github.com/custodia-labs/dairyghg/internal/core/domain"

// SettingsService manages assessment settings.
type SettingsService interface {
	// Get retrieves current settings merged over defaults.
	Get() (*domain.AssessmentSettings, error)

	// Save persists settings.
	Save(settings *domain.AssessmentSettings) error

	// Set updates one setting by key, validating the value.
	Set(key, value string) error

	// Keys returns the settable keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AssessmentSettings

	// ModelConfigs returns per-source factor overrides keyed by source name.
	ModelConfigs() map[string]map[string]any
}
