package driving

import "github.com/custodia-labs/searchbox/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by its config key, e.g. "client.debounce_ms".
	Set(key, value string) error

	// Keys returns the recognised config keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
