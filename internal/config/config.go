package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/stackseed-labs/stackseed/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyAPIKey         = "api_key"
	KeyProvider       = "provider"
	KeyModel          = "model"
	KeyPackageManager = "package_manager"
	KeyAITimeout      = "ai_timeout"
	KeyBaseURL        = "base_url"
)

// Defaults applied when a key is absent from both the file and the environment.
const (
	DefaultProvider       = "gemini"
	DefaultPackageManager = "npm"
	DefaultAITimeout      = 60 * time.Second
)

// Config is a handle on one config file. Environment variables prefixed with
// the branding env prefix (STACKSEED_PROVIDER, ...) override file values.
type Config struct {
	v    *viper.Viper
	path string
}

// Dir returns the path to the config directory (~/.stackseed/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file. STACKSEED_CONFIG
// relocates it.
func FilePath() string {
	if v := os.Getenv(branding.EnvVar("CONFIG")); v != "" {
		return v
	}
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load reads the default config file. A missing file is not an error.
func Load() (*Config, error) {
	return Open(FilePath())
}

// Open reads the config file at path. A missing file yields an empty config
// that will be created on the first Set.
func Open(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyProvider, DefaultProvider)
	v.SetDefault(KeyPackageManager, DefaultPackageManager)
	v.SetDefault(KeyAITimeout, DefaultAITimeout.String())

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	return &Config{v: v, path: path}, nil
}

// Path returns the file backing this config.
func (c *Config) Path() string { return c.path }

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Duration returns a duration-valued key, falling back to def when the value
// is missing, unparsable, or not positive.
func (c *Config) Duration(key string, def time.Duration) time.Duration {
	d := c.v.GetDuration(key)
	if d <= 0 {
		return def
	}
	return d
}

// Set writes a config key-value pair and saves the config file. Only keys
// already in the file plus key are written; defaults and environment
// overrides stay out of it.
func (c *Config) Set(key, value string) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	raw := viper.New()
	raw.SetConfigFile(c.path)
	raw.SetConfigType(fileType)
	if _, err := os.Stat(c.path); err == nil {
		if err := raw.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", c.path, err)
		}
	}
	raw.Set(key, value)

	if err := raw.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	c.v.Set(key, value)
	return nil
}
