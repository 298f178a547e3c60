package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version   int             `yaml:"version"`
	Server    ServerConfig    `yaml:"server"`
	Provider  ProviderConfig  `yaml:"provider"`
	Database  DatabaseConfig  `yaml:"database"`
	Engine    EngineConfig    `yaml:"engine"`
	Fixtures  FixturesConfig  `yaml:"fixtures"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes"` // Upload limit for POST /pointsets
}

// ProviderConfig selects and tunes the point set source
type ProviderConfig struct {
	Mode    ProviderMode `yaml:"mode"`
	BaseURL string       `yaml:"base_url,omitempty"` // Required for http mode
	Timeout Duration     `yaml:"timeout"`            // Per attempt
	Retry   RetryConfig  `yaml:"retry"`
}

// RetryConfig bounds the http provider's retry loop
type RetryConfig struct {
	InitialInterval Duration `yaml:"initial_interval"`
	MaxElapsed      Duration `yaml:"max_elapsed"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// EngineConfig holds triangulation limits
type EngineConfig struct {
	MaxPoints int `yaml:"max_points"` // 0 = unlimited
}

// FixturesConfig points at a YAML file of point sets seeded into the store
type FixturesConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig holds slog settings
type LoggingConfig struct {
	Level  string    `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// TelemetryConfig holds OpenTelemetry exporter settings
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint,omitempty"` // Empty disables tracing export
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"` // nil = enabled
}

// IsEnabled reports whether /metrics is served
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
