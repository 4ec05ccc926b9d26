// Package env layers environment variables over a persistent ConfigStore.
//
// Every dot key can be overridden by an upper-case variable with the
// KARMICDD_ prefix: api.url becomes KARMICDD_API_URL and auth.token becomes
// KARMICDD_AUTH_TOKEN. Variables may also come from a .env file loaded with
// LoadDotEnv. Writes always go to the underlying store, and a key written in
// this process is no longer shadowed by its variable.
package env

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Prefix is the environment variable prefix.
const Prefix = "KARMICDD"

// Ensure Overlay implements the interface.
var _ driven.ConfigStore = (*Overlay)(nil)

// Overlay is a ConfigStore reading environment overrides before base.
type Overlay struct {
	base driven.ConfigStore
	v    *viper.Viper

	mu      sync.RWMutex
	written map[string]bool
}

// NewOverlay wraps base with environment overrides.
func NewOverlay(base driven.ConfigStore) *Overlay {
	v := viper.New()
	v.SetEnvPrefix(Prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Overlay{
		base:    base,
		v:       v,
		written: make(map[string]bool),
	}
}

// LoadDotEnv loads the first .env file found in dirs without replacing
// variables already present in the environment. Returns the loaded path,
// or an empty string if none was found.
func LoadDotEnv(dirs ...string) string {
	if len(dirs) == 0 {
		if wd, err := os.Getwd(); err == nil {
			dirs = append(dirs, wd)
		}
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("config: failed to load %s: %v", path, err)
			continue
		}
		logger.Debug("config: loaded environment from %s", path)
		return path
	}
	return ""
}

// VarName returns the environment variable overriding key.
func VarName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return Prefix + "_" + strings.ToUpper(r.Replace(key))
}

// override returns the environment value for key if it shadows base.
func (o *Overlay) override(key string) (string, bool) {
	o.mu.RLock()
	written := o.written[key]
	o.mu.RUnlock()
	if written {
		return "", false
	}
	if _, ok := os.LookupEnv(VarName(key)); !ok {
		return "", false
	}
	return o.v.GetString(key), true
}

// Overridden reports whether key currently comes from the environment.
func (o *Overlay) Overridden(key string) bool {
	_, ok := o.override(key)
	return ok
}

// Get retrieves a configuration value by key.
func (o *Overlay) Get(key string) (any, bool) {
	if s, ok := o.override(key); ok {
		return s, true
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *Overlay) GetString(key string) string {
	if s, ok := o.override(key); ok {
		return s
	}
	return o.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (o *Overlay) GetInt(key string) int {
	if _, ok := o.override(key); ok {
		return o.v.GetInt(key)
	}
	return o.base.GetInt(key)
}

// GetFloat retrieves a numeric configuration value.
func (o *Overlay) GetFloat(key string) float64 {
	if _, ok := o.override(key); ok {
		return o.v.GetFloat64(key)
	}
	return o.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (o *Overlay) GetBool(key string) bool {
	if _, ok := o.override(key); ok {
		return o.v.GetBool(key)
	}
	return o.base.GetBool(key)
}

// GetDuration accepts "15s" or a bare number of seconds.
func (o *Overlay) GetDuration(key string) time.Duration {
	s, ok := o.override(key)
	if !ok {
		return o.base.GetDuration(key)
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}

// Set writes to the base store and stops the environment shadowing key.
func (o *Overlay) Set(key string, value any) error {
	if err := o.base.Set(key, value); err != nil {
		return err
	}
	o.markWritten(key)
	return nil
}

// Delete removes key from the base store and stops the environment
// shadowing it.
func (o *Overlay) Delete(key string) error {
	if err := o.base.Delete(key); err != nil {
		return err
	}
	o.markWritten(key)
	return nil
}

func (o *Overlay) markWritten(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.written[key] = true
}

// Save persists the base store.
func (o *Overlay) Save() error {
	return o.base.Save()
}

// Load reloads the base store.
func (o *Overlay) Load() error {
	return o.base.Load()
}

// Path returns the base store's path.
func (o *Overlay) Path() string {
	return o.base.Path()
}
