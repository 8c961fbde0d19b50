package driving

import "github.com/jordyarms/everyday/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set parses and stores one setting.
	// Returns domain.ErrUnknownSetting for unrecognised keys.
	Set(key, value string) error

	// Reset removes a stored setting so its default applies again.
	Reset(key string) error

	// Value returns the effective value of one setting.
	Value(key string) (any, error)

	// Defaults returns the settings used when nothing is stored.
	Defaults() *domain.AppSettings

	// Overridden returns the setting keys stored in the config file, sorted.
	Overridden() []string

	// ConfigPath returns the configuration file location.
	ConfigPath() string
}
