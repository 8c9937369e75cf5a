package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
	"github.com/custodia-labs/searchbox/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyServerAddr        = "server.addr"
	KeyServerLatency     = "server.latency_ms"
	KeyServerFailureRate = "server.failure_rate"
	KeyClientEndpoint    = "client.endpoint"
	KeyClientLimit       = "client.limit"
	KeyClientDebounce    = "client.debounce_ms"
	KeyClientRate        = "client.rate_per_sec"
	KeyCatalogFile       = "catalog.file"
)

var settingKeys = []string{
	KeyServerAddr,
	KeyServerLatency,
	KeyServerFailureRate,
	KeyClientEndpoint,
	KeyClientLimit,
	KeyClientDebounce,
	KeyClientRate,
	KeyCatalogFile,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Keys that are absent fall
// back to their defaults; an explicit zero is kept.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Server: domain.ServerSettings{
			Addr:        s.getString(KeyServerAddr, defaults.Server.Addr),
			Latency:     s.getMillis(KeyServerLatency, defaults.Server.Latency),
			FailureRate: s.getFloat(KeyServerFailureRate, defaults.Server.FailureRate),
		},
		Client: domain.ClientSettings{
			Endpoint:      s.getString(KeyClientEndpoint, defaults.Client.Endpoint),
			Limit:         s.getInt(KeyClientLimit, defaults.Client.Limit),
			Debounce:      s.getMillis(KeyClientDebounce, defaults.Client.Debounce),
			RatePerSecond: s.getFloat(KeyClientRate, defaults.Client.RatePerSecond),
		},
		Catalog: domain.CatalogSettings{
			File: s.configStore.GetString(KeyCatalogFile),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("load settings from %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyServerAddr, settings.Server.Addr},
		{KeyServerLatency, settings.Server.Latency.Milliseconds()},
		{KeyServerFailureRate, settings.Server.FailureRate},
		{KeyClientEndpoint, settings.Client.Endpoint},
		{KeyClientLimit, int64(settings.Client.Limit)},
		{KeyClientDebounce, settings.Client.Debounce.Milliseconds()},
		{KeyClientRate, settings.Client.RatePerSecond},
		{KeyCatalogFile, settings.Catalog.File},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and persists it. The resulting settings must
// still validate.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyServerAddr:
		settings.Server.Addr = value
	case KeyServerLatency:
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		settings.Server.Latency = d
	case KeyServerFailureRate:
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		settings.Server.FailureRate = f
	case KeyClientEndpoint:
		settings.Client.Endpoint = value
	case KeyClientLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Client.Limit = n
	case KeyClientDebounce:
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		settings.Client.Debounce = d
	case KeyClientRate:
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		settings.Client.RatePerSecond = f
	case KeyCatalogFile:
		settings.Catalog.File = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the recognised config keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func parseMillis(key, value string) (time.Duration, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number of milliseconds", domain.ErrInvalidInput, key)
	}
	return time.Duration(n) * time.Millisecond, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
	}
	return f, nil
}
