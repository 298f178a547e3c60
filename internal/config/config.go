// Package config provides configuration management for the triangulator.
//
// Settings come from a single YAML file; every field has a default so
// the service runs with no file at all. Command line flags override
// file values after loading.
//
// Config file locations (priority order):
//  1. $TRIANGULATOR_CONFIG
//  2. ./triangulator.yaml
//  3. ~/.config/triangulator/config.yaml
//  4. /etc/triangulator/config.yaml
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxBodyBytes    = 16 << 20
	defaultProviderTimeout = 5 * time.Second
	defaultRetryInitial    = 100 * time.Millisecond
	defaultRetryMaxElapsed = 5 * time.Second
	defaultDatabasePath    = "./triangulator.db"
	defaultServiceName     = "triangulator"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}

	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(defaultReadTimeout)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(defaultWriteTimeout)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(defaultShutdownTimeout)
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = defaultMaxBodyBytes
	}

	if c.Provider.Mode == "" {
		c.Provider.Mode = ProviderStore
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = Duration(defaultProviderTimeout)
	}
	if c.Provider.Retry.InitialInterval == 0 {
		c.Provider.Retry.InitialInterval = Duration(defaultRetryInitial)
	}
	if c.Provider.Retry.MaxElapsed == 0 {
		c.Provider.Retry.MaxElapsed = Duration(defaultRetryMaxElapsed)
	}

	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = defaultServiceName
	}
}

// Validate checks values that have no safe default
func (c *Config) Validate() error {
	var errs []error

	if !c.Provider.Mode.Valid() {
		errs = append(errs, fmt.Errorf("provider.mode %q: want store or http", c.Provider.Mode))
	}
	if c.Provider.Mode == ProviderHTTP {
		if c.Provider.BaseURL == "" {
			errs = append(errs, errors.New("provider.base_url is required in http mode"))
		} else if u, err := url.Parse(c.Provider.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("provider.base_url %q is not an absolute URL", c.Provider.BaseURL))
		}
	}
	if c.Engine.MaxPoints < 0 {
		errs = append(errs, fmt.Errorf("engine.max_points %d: must not be negative", c.Engine.MaxPoints))
	}
	if c.Server.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes %d: must not be negative", c.Server.MaxBodyBytes))
	}
	if c.Logging.Format != LogFormatText && c.Logging.Format != LogFormatJSON {
		errs = append(errs, fmt.Errorf("logging.format %q: want text or json", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel maps logging.level to a slog level, defaulting to info
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger described by l
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Listen: %s, Provider: %s", c.Server.Addr, c.Provider.Mode)
	if c.Provider.Mode == ProviderHTTP {
		summary += fmt.Sprintf(" (%s)", c.Provider.BaseURL)
	} else {
		summary += fmt.Sprintf(" (%s)", c.Database.Path)
	}
	summary += "\n"

	maxPoints := "unlimited"
	if c.Engine.MaxPoints > 0 {
		maxPoints = fmt.Sprintf("%d", c.Engine.MaxPoints)
	}
	summary += fmt.Sprintf("Max points: %s, Metrics: %v", maxPoints, c.Metrics.IsEnabled())
	if c.Telemetry.Endpoint != "" {
		summary += fmt.Sprintf(", Tracing: %s", c.Telemetry.Endpoint)
	}
	if c.Fixtures.Path != "" {
		summary += fmt.Sprintf(", Fixtures: %s (watch=%v)", c.Fixtures.Path, c.Fixtures.Watch)
	}

	return summary
}
