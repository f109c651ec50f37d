// Package config loads the vizinhanca client configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
)

// DefaultAPIURL is used when no configuration file or environment override exists.
const DefaultAPIURL = "http://localhost:3000"

// DefaultPollInterval is how often the unread notification count is refreshed.
const DefaultPollInterval = 30 * time.Second

// Config holds the client configuration from ~/.vizinhanca/config.yml.
type Config struct {
	// APIURL is the base URL of the REST API and WebSocket host.
	APIURL string `yaml:"api_url"`

	// PollIntervalSeconds controls the notification unread-count polling cadence.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// PollInterval returns the configured polling interval as a duration.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// applyDefaults fills unset fields and environment overrides.
// VIZINHANCA_API_URL always wins over the file value, mirroring how the
// backend host is injected in deployments.
func (c *Config) applyDefaults() {
	if env := os.Getenv("VIZINHANCA_API_URL"); env != "" {
		c.APIURL = env
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
}

// DefaultPath returns the path of the user-level configuration file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vizinhanca", "config.yml"), nil
}

// LoadDefault loads the configuration from the default path.
// A missing file is not an error; defaults apply.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	return Load(path)
}

// Load loads the configuration from an explicit path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file")
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw yaml.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}
	cfg.applyDefaults()
	return &cfg, nil
}
