package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIURL          = domain.SettingAPIURL
	KeyAPITimeout      = domain.SettingAPITimeout
	KeyAPIRateLimit    = domain.SettingAPIRateLimit
	KeyAPIBurst        = domain.SettingAPIBurst
	KeySearchPageSize  = domain.SettingSearchPageSize
	KeySearchSortBy    = domain.SettingSearchSortBy
	KeySearchSortOrder = domain.SettingSearchSortOrder
	KeyCacheURL        = domain.SettingCacheURL
	KeyCacheTTL        = domain.SettingCacheTTL
	KeyLogLevel        = domain.SettingLogLevel
	KeyLogFormat       = domain.SettingLogFormat
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    newValidator(),
	}
}

// Get retrieves current application settings. Unset or unrecognised
// values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			URL:       strings.TrimRight(s.getString(KeyAPIURL, defaults.API.URL), "/"),
			Timeout:   s.getDuration(KeyAPITimeout, defaults.API.Timeout),
			RateLimit: s.getFloat(KeyAPIRateLimit, defaults.API.RateLimit),
			Burst:     s.getInt(KeyAPIBurst, defaults.API.Burst),
		},
		Search: domain.SearchSettings{
			PageSize:  s.getPageSize(defaults.Search.PageSize),
			SortBy:    s.getSortField(defaults.Search.SortBy),
			SortOrder: s.getSortOrder(defaults.Search.SortOrder),
		},
		Cache: domain.CacheSettings{
			URL: s.configStore.GetString(KeyCacheURL), // No default - caching is off unless configured
			TTL: s.getDuration(KeyCacheTTL, defaults.Cache.TTL),
		},
		Log: domain.LogSettings{
			Level:  s.getString(KeyLogLevel, defaults.Log.Level),
			Format: s.getLogFormat(defaults.Log.Format),
		},
	}

	return settings, nil
}

// Save validates settings and persists them.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}
	if err := validateStruct(s.validate, settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyAPIURL, settings.API.URL},
		{KeyAPITimeout, settings.API.Timeout},
		{KeyAPIRateLimit, settings.API.RateLimit},
		{KeyAPIBurst, settings.API.Burst},
		{KeySearchPageSize, settings.Search.PageSize},
		{KeySearchSortBy, settings.Search.SortBy.String()},
		{KeySearchSortOrder, settings.Search.SortOrder.String()},
		{KeyCacheURL, settings.Cache.URL},
		{KeyCacheTTL, settings.Cache.TTL},
		{KeyLogLevel, settings.Log.Level},
		{KeyLogFormat, settings.Log.Format.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetValue parses value for key, validates the resulting settings and
// persists them.
func (s *SettingsService) SetValue(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch key {
	case KeyAPIURL:
		settings.API.URL = strings.TrimRight(value, "/")
	case KeyAPITimeout:
		settings.API.Timeout, err = parseDuration(value)
	case KeyAPIRateLimit:
		settings.API.RateLimit, err = strconv.ParseFloat(value, 64)
	case KeyAPIBurst:
		settings.API.Burst, err = strconv.Atoi(value)
	case KeySearchPageSize:
		settings.Search.PageSize, err = strconv.Atoi(value)
	case KeySearchSortBy:
		settings.Search.SortBy = domain.SortField(value)
	case KeySearchSortOrder:
		settings.Search.SortOrder = domain.SortOrder(strings.ToLower(value))
	case KeyCacheURL:
		settings.Cache.URL = value
	case KeyCacheTTL:
		settings.Cache.TTL, err = parseDuration(value)
	case KeyLogLevel:
		settings.Log.Level = strings.ToLower(value)
	case KeyLogFormat:
		settings.Log.Format = domain.LogFormat(strings.ToLower(value))
	default:
		return fmt.Errorf("%w: unknown setting %q (known: %s)", domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyAPIURL,
		KeyAPITimeout,
		KeyAPIRateLimit,
		KeyAPIBurst,
		KeySearchPageSize,
		KeySearchSortBy,
		KeySearchSortOrder,
		KeyCacheURL,
		KeyCacheTTL,
		KeyLogLevel,
		KeyLogFormat,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
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

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPageSize(defaultVal int) int {
	val := s.configStore.GetInt(KeySearchPageSize)
	if !domain.IsValidPageSize(val) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSortField(defaultVal domain.SortField) domain.SortField {
	field := domain.SortField(s.configStore.GetString(KeySearchSortBy))
	if !field.IsValid() {
		return defaultVal
	}
	return field
}

func (s *SettingsService) getSortOrder(defaultVal domain.SortOrder) domain.SortOrder {
	order := domain.SortOrder(s.configStore.GetString(KeySearchSortOrder))
	if !order.IsValid() {
		return defaultVal
	}
	return order
}

func (s *SettingsService) getLogFormat(defaultVal domain.LogFormat) domain.LogFormat {
	format := domain.LogFormat(s.configStore.GetString(KeyLogFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

// parseDuration accepts a Go duration ("15s") or a whole number of seconds.
func parseDuration(value string) (time.Duration, error) {
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(value)
}
