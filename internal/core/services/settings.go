package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driven"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBoundaryScope   = "boundary.scope"
	keyBoundaryInclude = "boundary.include"
	keyWorkers         = "batch.workers"
	keyGWPCH4          = "factors.gwp_ch4"
	keyGWPN2O          = "factors.gwp_n2o"
	keyClimate         = "defaults.climate"
	keyManureSystem    = "defaults.manure_system"
	keyTier            = "defaults.tier"
	keyCountry         = "energy.country"
	keyRegion          = "inputs.region"

	// modelPrefix scopes per-model factor overrides, e.g. "models.enteric.ef_milking_cows".
	modelPrefix = "models."
)

// SettingsService manages assessment settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AssessmentSettings, error) {
	defaults := domain.DefaultAssessmentSettings()

	settings := &domain.AssessmentSettings{
		Boundary: s.getBoundary(defaults.Boundary),
		Workers:  s.getPositiveInt(keyWorkers, defaults.Workers),
		Factors: domain.FactorSettings{
			GWPCH4: s.getPositiveFloat(keyGWPCH4, defaults.Factors.GWPCH4),
			GWPN2O: s.getPositiveFloat(keyGWPN2O, defaults.Factors.GWPN2O),
		},
		Defaults: domain.DefaultSettings{
			Climate:      s.getClimate(defaults.Defaults.Climate),
			ManureSystem: s.getManureSystem(defaults.Defaults.ManureSystem),
			Tier:         s.getTier(defaults.Defaults.Tier),
			Country:      s.getString(keyCountry, defaults.Defaults.Country),
			Region:       s.getString(keyRegion, defaults.Defaults.Region),
		},
	}

	return settings, nil
}

// Save persists assessment settings.
func (s *SettingsService) Save(settings *domain.AssessmentSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyBoundaryScope, settings.Boundary.Scope.String()},
		{keyBoundaryInclude, append([]string{}, settings.Boundary.Include...)},
		{keyWorkers, settings.Workers},
		{keyGWPCH4, settings.Factors.GWPCH4},
		{keyGWPN2O, settings.Factors.GWPN2O},
		{keyClimate, settings.Defaults.Climate.String()},
		{keyManureSystem, settings.Defaults.ManureSystem.String()},
		{keyTier, settings.Defaults.Tier},
		{keyCountry, settings.Defaults.Country},
		{keyRegion, settings.Defaults.Region},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates one setting from its string form. Model overrides
// ("models.<source>.<factor>") accept any non-negative number.
//
//nolint:gocyclo // One case per key
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if strings.HasPrefix(key, modelPrefix) {
		return s.setModelFactor(key, value)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyBoundaryScope:
		settings.Boundary.Scope = domain.Scope(strings.ToLower(value))
	case keyBoundaryInclude:
		settings.Boundary.Include = splitList(value)
	case keyWorkers:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Workers = n
	case keyGWPCH4, keyGWPN2O:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		if key == keyGWPCH4 {
			settings.Factors.GWPCH4 = f
		} else {
			settings.Factors.GWPN2O = f
		}
	case keyClimate:
		settings.Defaults.Climate = domain.Climate(strings.ToLower(value))
	case keyManureSystem:
		settings.Defaults.ManureSystem = domain.ManureSystem(strings.ToLower(value))
	case keyTier:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be 1 or 2", domain.ErrInvalidInput, key)
		}
		settings.Defaults.Tier = n
	case keyCountry:
		settings.Defaults.Country = value
	case keyRegion:
		settings.Defaults.Region = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the settable keys.
func (s *SettingsService) Keys() []string {
	return []string{
		keyBoundaryScope, keyBoundaryInclude, keyWorkers,
		keyGWPCH4, keyGWPN2O,
		keyClimate, keyManureSystem, keyTier,
		keyCountry, keyRegion,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AssessmentSettings {
	return domain.DefaultAssessmentSettings()
}

// ModelConfigs returns per-source factor overrides keyed by source name.
// Only stored "models.<source>.<factor>" keys for known sources are returned.
func (s *SettingsService) ModelConfigs() map[string]map[string]any {
	configs := make(map[string]map[string]any)
	for _, key := range s.configStore.Keys() {
		if !strings.HasPrefix(key, modelPrefix) {
			continue
		}
		source, factor, ok := strings.Cut(strings.TrimPrefix(key, modelPrefix), ".")
		if !ok || factor == "" || !domain.IsKnownSource(source) {
			continue
		}
		val, exists := s.configStore.Get(key)
		if !exists {
			continue
		}
		if configs[source] == nil {
			configs[source] = make(map[string]any)
		}
		configs[source][factor] = val
	}
	return configs
}

func (s *SettingsService) setModelFactor(key, value string) error {
	source, factor, ok := strings.Cut(strings.TrimPrefix(key, modelPrefix), ".")
	if !ok || factor == "" {
		return fmt.Errorf("%w: model setting must look like models.<source>.<factor>", domain.ErrInvalidInput)
	}
	if !domain.IsKnownSource(source) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSource, source)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || !domain.IsFinite(f) || f < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Set(key, f); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 || !domain.IsFinite(val) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBoundary(defaultVal domain.BoundarySpec) domain.BoundarySpec {
	scope := domain.Scope(s.configStore.GetString(keyBoundaryScope))
	if scope == "" {
		scope = defaultVal.Scope
	}
	spec := domain.BoundarySpec{Scope: scope, Include: s.configStore.GetStringSlice(keyBoundaryInclude)}
	if len(spec.Include) == 0 {
		spec.Include = nil
	}
	if _, err := spec.Boundary(); err != nil {
		return defaultVal
	}
	return spec
}

func (s *SettingsService) getClimate(defaultVal domain.Climate) domain.Climate {
	c := domain.Climate(s.configStore.GetString(keyClimate))
	if !c.IsValid() {
		return defaultVal
	}
	return c
}

func (s *SettingsService) getManureSystem(defaultVal domain.ManureSystem) domain.ManureSystem {
	m := domain.ManureSystem(s.configStore.GetString(keyManureSystem))
	if !m.IsValid() {
		return defaultVal
	}
	return m
}

func (s *SettingsService) getTier(defaultVal int) int {
	t := s.configStore.GetInt(keyTier)
	if t != domain.Tier1 && t != domain.Tier2 {
		return defaultVal
	}
	return t
}

// splitList splits a comma-separated list, dropping blanks, sorted.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
