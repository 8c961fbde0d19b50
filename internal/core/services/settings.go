package services

import (
	"fmt"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	version     string
}

// NewSettingsService creates a new settings service.
// The version is used to build the default User-Agent.
func NewSettingsService(configStore driven.ConfigStore, version string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		version:     version,
	}
}

// Get retrieves current application settings.
// Stored values of the wrong type fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.Defaults()

	settings := &domain.AppSettings{
		HTTP: domain.HTTPSettings{
			TimeoutSeconds:    s.getInt(domain.KeyHTTPTimeout, defaults.HTTP.TimeoutSeconds),
			UserAgent:         s.getString(domain.KeyHTTPUserAgent, defaults.HTTP.UserAgent),
			Concurrency:       s.getInt(domain.KeyHTTPConcurrency, defaults.HTTP.Concurrency),
			RequestsPerSecond: s.getFloat(domain.KeyHTTPRate, defaults.HTTP.RequestsPerSecond),
		},
		QR: domain.QRSettings{
			BoxSize:  s.getInt(domain.KeyQRBoxSize, defaults.QR.BoxSize),
			Border:   s.getInt(domain.KeyQRBorder, defaults.QR.Border),
			Recovery: s.getRecovery(defaults.QR.Recovery),
		},
		Hasher: domain.HasherSettings{
			ColumnName: s.getString(domain.KeyHasherColumnName, defaults.Hasher.ColumnName),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(domain.KeyHistoryEnabled, defaults.History.Enabled),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set parses value for key, checks the resulting settings and stores it.
func (s *SettingsService) Set(key, value string) error {
	def, ok := domain.LookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}

	parsed, err := def.Parse(value)
	if err != nil {
		return err
	}

	current, err := s.Get()
	if err != nil {
		// A broken stored value must still be fixable with set.
		current = s.Defaults()
	}
	candidate := *current
	applySetting(&candidate, key, parsed)
	if err := candidate.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored setting.
func (s *SettingsService) Reset(key string) error {
	if _, ok := domain.LookupSetting(key); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Value returns the effective value of one setting.
func (s *SettingsService) Value(key string) (any, error) {
	if _, ok := domain.LookupSetting(key); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return settings.Value(key), nil
}

// Defaults returns the settings used when nothing is stored.
func (s *SettingsService) Defaults() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	defaults.HTTP.UserAgent = domain.DefaultUserAgent(s.version)
	return &defaults
}

// Overridden returns the known setting keys present in the config file.
func (s *SettingsService) Overridden() []string {
	var keys []string
	for _, key := range s.configStore.Keys() {
		if _, ok := domain.LookupSetting(key); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// ConfigPath returns the configuration file location.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// applySetting writes a parsed value into the matching field.
func applySetting(settings *domain.AppSettings, key string, value any) {
	switch key {
	case domain.KeyHTTPTimeout:
		settings.HTTP.TimeoutSeconds = value.(int)
	case domain.KeyHTTPUserAgent:
		settings.HTTP.UserAgent = value.(string)
	case domain.KeyHTTPConcurrency:
		settings.HTTP.Concurrency = value.(int)
	case domain.KeyHTTPRate:
		settings.HTTP.RequestsPerSecond = value.(float64)
	case domain.KeyQRBoxSize:
		settings.QR.BoxSize = value.(int)
	case domain.KeyQRBorder:
		settings.QR.Border = value.(int)
	case domain.KeyQRRecovery:
		settings.QR.Recovery = domain.QRRecovery(value.(string))
	case domain.KeyHasherColumnName:
		settings.Hasher.ColumnName = value.(string)
	case domain.KeyHistoryEnabled:
		settings.History.Enabled = value.(bool)
	}
}

// Helper methods

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case int, int64:
		return s.configStore.GetInt(key)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch val.(type) {
	case float64, int, int64:
		return s.configStore.GetFloat(key)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return defaultVal
}

func (s *SettingsService) getRecovery(defaultVal domain.QRRecovery) domain.QRRecovery {
	r := domain.QRRecovery(s.configStore.GetString(domain.KeyQRRecovery))
	if r.IsValid() {
		return r
	}
	return defaultVal
}
