// Package config loads the command line tool's settings from a YAML file and
// SMARTEMAILING_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "smartemailing.yaml"

// Environment variables that override the file.
const (
	EnvUser       = "SMARTEMAILING_USER"
	EnvToken      = "SMARTEMAILING_TOKEN"
	EnvBaseURL    = "SMARTEMAILING_BASE_URL"
	EnvTimeout    = "SMARTEMAILING_TIMEOUT"
	EnvVerifyPeer = "SMARTEMAILING_VERIFY_PEER"
	EnvLogLevel   = "SMARTEMAILING_LOG_LEVEL"
)

const defaultTimeout = 10 * time.Second

// Config holds the tool's settings.
type Config struct {
	User       string        `yaml:"user"`
	Token      string        `yaml:"token"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    string        `yaml:"timeout"`
	VerifyPeer bool          `yaml:"verify_peer"`
	Logging    LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the tool's logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json or console
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://app.smartemailing.cz",
		Timeout: defaultTimeout.String(),
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path. The file holds the API token and is
// created readable by the owner only.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if user := os.Getenv(EnvUser); user != "" {
		c.User = user
	}
	if token := os.Getenv(EnvToken); token != "" {
		c.Token = token
	}
	if url := os.Getenv(EnvBaseURL); url != "" {
		c.BaseURL = url
	}
	if timeout := os.Getenv(EnvTimeout); timeout != "" {
		c.Timeout = timeout
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if verify := os.Getenv(EnvVerifyPeer); verify != "" {
		v, err := strconv.ParseBool(verify)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerifyPeer, err)
		}
		c.VerifyPeer = v
	}
	return nil
}

// GetTimeout returns the request timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// Validate reports settings the client cannot work without.
func (c *Config) Validate() error {
	if c.User == "" || c.Token == "" {
		return fmt.Errorf("API credentials not configured (set %s and %s)", EnvUser, EnvToken)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is empty")
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
	}
	return nil
}
