package domain

import (
	"strconv"
	"time"
)

const unknownDescription = "Unknown"

// DefaultAPIURL is the API base used when nothing is configured.
const DefaultAPIURL = "http://localhost:5000/api"

// LogFormat selects how log lines are encoded.
type LogFormat string

// Available log formats.
const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// IsValid returns true if the format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatConsole || f == LogFormatJSON
}

// String returns the string representation.
func (f LogFormat) String() string {
	return string(f)
}

// APISettings configures the REST client.
type APISettings struct {
	// URL is the API base, including the /api prefix.
	URL string `validate:"required,url"`

	// Timeout bounds every request.
	Timeout time.Duration `validate:"min=0"`

	// RateLimit is the sustained request rate in requests per second.
	// Zero disables client-side throttling.
	RateLimit float64 `validate:"min=0"`

	// Burst is the number of requests allowed above the sustained rate.
	Burst int `validate:"min=0"`
}

// SearchSettings configures default search behaviour.
type SearchSettings struct {
	PageSize  int       `validate:"pagesize"`
	SortBy    SortField `validate:"sortfield"`
	SortOrder SortOrder `validate:"oneof=asc desc"`
}

// CacheSettings configures the optional response cache.
type CacheSettings struct {
	// URL is a redis URL. Empty disables caching.
	URL string `validate:"omitempty,url"`

	// TTL is how long cached responses are kept.
	TTL time.Duration `validate:"min=0"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level  string    `validate:"oneof=debug info warn error"`
	Format LogFormat `validate:"oneof=console json"`
}

// AppSettings holds all application configuration.
type AppSettings struct {
	API    APISettings
	Search SearchSettings
	Cache  CacheSettings
	Log    LogSettings
}

// DefaultAppSettings returns the configuration used out of the box.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			URL:       DefaultAPIURL,
			Timeout:   15 * time.Second,
			RateLimit: 5,
			Burst:     10,
		},
		Search: SearchSettings{
			PageSize:  DefaultPageSize,
			SortBy:    SortMatchScore,
			SortOrder: SortDesc,
		},
		Cache: CacheSettings{
			TTL: 10 * time.Minute,
		},
		Log: LogSettings{
			Level:  "info",
			Format: LogFormatConsole,
		},
	}
}

// Flattened setting keys as stored in the config file.
const (
	SettingAPIURL          = "api.url"
	SettingAPITimeout      = "api.timeout"
	SettingAPIRateLimit    = "api.rate_limit"
	SettingAPIBurst        = "api.burst"
	SettingSearchPageSize  = "search.page_size"
	SettingSearchSortBy    = "search.sort_by"
	SettingSearchSortOrder = "search.sort_order"
	SettingCacheURL        = "cache.url"
	SettingCacheTTL        = "cache.ttl"
	SettingLogLevel        = "log.level"
	SettingLogFormat       = "log.format"
)

// Values renders every setting as display text keyed by its flattened key.
func (s AppSettings) Values() map[string]string {
	cacheURL := s.Cache.URL
	if cacheURL == "" {
		cacheURL = "(disabled)"
	}
	return map[string]string{
		SettingAPIURL:          s.API.URL,
		SettingAPITimeout:      s.API.Timeout.String(),
		SettingAPIRateLimit:    strconv.FormatFloat(s.API.RateLimit, 'g', -1, 64),
		SettingAPIBurst:        strconv.Itoa(s.API.Burst),
		SettingSearchPageSize:  strconv.Itoa(s.Search.PageSize),
		SettingSearchSortBy:    s.Search.SortBy.String(),
		SettingSearchSortOrder: s.Search.SortOrder.String(),
		SettingCacheURL:        cacheURL,
		SettingCacheTTL:        s.Cache.TTL.String(),
		SettingLogLevel:        s.Log.Level,
		SettingLogFormat:       s.Log.Format.String(),
	}
}
