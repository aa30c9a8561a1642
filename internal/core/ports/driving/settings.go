package driving

import "github.com/custodia-labs/cantus-corpus/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings merged over the defaults.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by key, parsing value for the key's type.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
