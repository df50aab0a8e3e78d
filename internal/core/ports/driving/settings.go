package driving

import "github.com/custodia-labs/tclean/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.Settings, error)

	// Set validates and persists a single dot-notation key.
	Set(key, value string) error

	// Keys returns the recognised setting keys in display order.
	Keys() []string

	// Unknown returns stored keys that are not recognised settings.
	Unknown() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Path returns the configuration file path.
	Path() string
}
