// Package config handles application configuration loading and validation
// from environment variables and an optional YAML file, providing a
// type-safe configuration structure.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sofatutor/aura-cli/internal/aura"
)

// Config holds all application configuration values. Precedence is
// environment variable over config file over built-in default; CLI flags
// are applied on top by the caller.
type Config struct {
	// OAuth client credentials. Required for all API commands.
	ClientID     string
	ClientSecret string

	// API endpoints
	BaseURL string // Instance/tenant API base URL
	AuthURL string // OAuth token endpoint base URL

	// Polling
	PollInterval time.Duration // Interval between readiness checks
	WaitTimeout  time.Duration // Ceiling for the readiness wait

	// Logging
	LogLevel  string // Log level (debug, info, warn, error)
	LogFormat string // Log format (json, console)
	LogFile   string // Path to log file (empty for stdout)
}

// fileConfig is the YAML config file shape. Durations are strings in
// time.ParseDuration syntax (e.g. "5s", "10m").
type fileConfig struct {
	BaseURL      string `yaml:"base_url"`
	AuthURL      string `yaml:"auth_url"`
	PollInterval string `yaml:"poll_interval"`
	WaitTimeout  string `yaml:"wait_timeout"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	LogFile      string `yaml:"log_file"`
}

// New creates a configuration from the optional YAML file at filePath and
// the environment. An empty filePath skips file loading; a missing or
// malformed file is an error.
func New(filePath string) (*Config, error) {
	var fc fileConfig
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", filePath, err)
		}
	}

	pollInterval, err := fileDuration(fc.PollInterval, aura.DefaultPollInterval)
	if err != nil {
		return nil, fmt.Errorf("config file poll_interval: %w", err)
	}
	waitTimeout, err := fileDuration(fc.WaitTimeout, aura.DefaultWaitTimeout)
	if err != nil {
		return nil, fmt.Errorf("config file wait_timeout: %w", err)
	}

	cfg := &Config{
		ClientID:     getEnvString("AURA_CLIENT_ID", ""),
		ClientSecret: getEnvString("AURA_CLIENT_SECRET", ""),

		BaseURL: getEnvString("AURA_BASE_URL", stringOr(fc.BaseURL, aura.DefaultBaseURL)),
		AuthURL: getEnvString("AURA_AUTH_URL", stringOr(fc.AuthURL, aura.DefaultAuthURL)),

		PollInterval: getEnvDuration("AURA_POLL_INTERVAL", pollInterval),
		WaitTimeout:  getEnvDuration("AURA_WAIT_TIMEOUT", waitTimeout),

		LogLevel:  getEnvString("LOG_LEVEL", stringOr(fc.LogLevel, "info")),
		LogFormat: getEnvString("LOG_FORMAT", stringOr(fc.LogFormat, "json")),
		LogFile:   getEnvString("LOG_FILE", fc.LogFile),
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %v", cfg.PollInterval)
	}
	if cfg.WaitTimeout <= 0 {
		return nil, fmt.Errorf("wait timeout must be positive, got %v", cfg.WaitTimeout)
	}

	return cfg, nil
}

// RequireCredentials validates that OAuth client credentials are present.
func (c *Config) RequireCredentials() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("client credentials are required (set AURA_CLIENT_ID and AURA_CLIENT_SECRET, or run 'aura configure')")
	}
	return nil
}

func fileDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func stringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
