package driving

import "github.com/karmicdd/karmicdd-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings after validating them.
	Save(settings *domain.AppSettings) error

	// SetValue updates a single setting by key.
	SetValue(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
