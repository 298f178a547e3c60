package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseProviderMode(t *testing.T) {
	tests := []struct {
		input string
		want  ProviderMode
	}{
		{"store", ProviderStore},
		{"http", ProviderHTTP},
		{"HTTP", ProviderHTTP},
		{" http ", ProviderHTTP},
		{"invalid", ProviderStore}, // Default
		{"", ProviderStore},        // Default
	}

	for _, tt := range tests {
		if got := ParseProviderMode(tt.input); got != tt.want {
			t.Errorf("ParseProviderMode(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		input string
		want  LogFormat
	}{
		{"json", LogFormatJSON},
		{"JSON", LogFormatJSON},
		{"text", LogFormatText},
		{"", LogFormatText},
		{"xml", LogFormatText},
	}

	for _, tt := range tests {
		if got := ParseLogFormat(tt.input); got != tt.want {
			t.Errorf("ParseLogFormat(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %s, want :8080", cfg.Server.Addr)
	}
	if cfg.Provider.Mode != ProviderStore {
		t.Errorf("Provider.Mode = %s, want %s", cfg.Provider.Mode, ProviderStore)
	}
	if cfg.Provider.Retry.MaxElapsed.Duration() != 5*time.Second {
		t.Errorf("Provider.Retry.MaxElapsed = %s, want 5s", cfg.Provider.Retry.MaxElapsed.Duration())
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should not be empty")
	}
	if cfg.Engine.MaxPoints != 0 {
		t.Errorf("Engine.MaxPoints = %d, want 0 (unlimited)", cfg.Engine.MaxPoints)
	}
	if !cfg.Metrics.IsEnabled() {
		t.Error("Metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"http with url", func(c *Config) {
			c.Provider.Mode = ProviderHTTP
			c.Provider.BaseURL = "http://manager:8000"
		}, ""},
		{"http without url", func(c *Config) {
			c.Provider.Mode = ProviderHTTP
		}, "base_url is required"},
		{"http with relative url", func(c *Config) {
			c.Provider.Mode = ProviderHTTP
			c.Provider.BaseURL = "manager/api"
		}, "not an absolute URL"},
		{"unknown mode", func(c *Config) {
			c.Provider.Mode = "ftp"
		}, "provider.mode"},
		{"negative max points", func(c *Config) {
			c.Engine.MaxPoints = -1
		}, "engine.max_points"},
		{"unknown log format", func(c *Config) {
			c.Logging.Format = "xml"
		}, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMetricsIsEnabled(t *testing.T) {
	off := false
	on := true

	if !(MetricsConfig{}).IsEnabled() {
		t.Error("nil Enabled should mean enabled")
	}
	if (MetricsConfig{Enabled: &off}).IsEnabled() {
		t.Error("Enabled=false should disable metrics")
	}
	if !(MetricsConfig{Enabled: &on}).IsEnabled() {
		t.Error("Enabled=true should enable metrics")
	}
}

func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := (LoggingConfig{Level: tt.level}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %s, want %s", tt.level, got, tt.want)
		}
	}

	var buf bytes.Buffer
	logger := LoggingConfig{Level: "info", Format: LogFormatJSON}.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "points", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"points":3`) {
		t.Errorf("JSON log output = %q", out)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Provider.Mode = ProviderHTTP
	cfg.Provider.BaseURL = "http://manager:8000"
	cfg.Provider.Retry.MaxElapsed = Duration(2 * time.Second)
	cfg.Engine.MaxPoints = 5000
	cfg.Fixtures.Path = "fixtures.yaml"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	if loaded.Provider.Mode != ProviderHTTP {
		t.Errorf("Provider.Mode = %s, want %s", loaded.Provider.Mode, ProviderHTTP)
	}
	if loaded.Provider.BaseURL != "http://manager:8000" {
		t.Errorf("Provider.BaseURL = %s", loaded.Provider.BaseURL)
	}
	if loaded.Provider.Retry.MaxElapsed.Duration() != 2*time.Second {
		t.Errorf("Retry.MaxElapsed = %s, want 2s", loaded.Provider.Retry.MaxElapsed.Duration())
	}
	if loaded.Engine.MaxPoints != 5000 {
		t.Errorf("Engine.MaxPoints = %d, want 5000", loaded.Engine.MaxPoints)
	}
	if loaded.Fixtures.Path != "fixtures.yaml" {
		t.Errorf("Fixtures.Path = %s", loaded.Fixtures.Path)
	}
}

func TestLoadFromPath_PartialFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	data := "server:\n  addr: \":9000\"\nprovider:\n  timeout: 250ms\n"
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %s, want :9000", cfg.Server.Addr)
	}
	if cfg.Provider.Timeout.Duration() != 250*time.Millisecond {
		t.Errorf("Provider.Timeout = %s, want 250ms", cfg.Provider.Timeout.Duration())
	}
	// Unset sections fall back to defaults
	if cfg.Provider.Mode != ProviderStore {
		t.Errorf("Provider.Mode = %s, want %s", cfg.Provider.Mode, ProviderStore)
	}
	if cfg.Server.ShutdownTimeout.Duration() != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %s, want 10s", cfg.Server.ShutdownTimeout.Duration())
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tmpDir := t.TempDir()

	badYAML := filepath.Join(tmpDir, "bad.yaml")
	os.WriteFile(badYAML, []byte("server: [unclosed"), 0644)
	if _, _, err := LoadFromPath(badYAML); err == nil {
		t.Error("expected parse error")
	}

	badDuration := filepath.Join(tmpDir, "duration.yaml")
	os.WriteFile(badDuration, []byte("provider:\n  timeout: soon\n"), 0644)
	if _, _, err := LoadFromPath(badDuration); err == nil {
		t.Error("expected duration error")
	}

	badMode := filepath.Join(tmpDir, "mode.yaml")
	os.WriteFile(badMode, []byte("provider:\n  mode: http\n"), 0644)
	if _, _, err := LoadFromPath(badMode); err == nil {
		t.Error("expected validation error for http mode without base_url")
	}

	if _, _, err := LoadFromPath(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	// Should find config in working directory
	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	// Explicit path exists, should win
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/explicit.yaml")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/user")

	paths := SearchPaths()
	want := []string{
		"/tmp/explicit.yaml",
		"", // working directory, checked by suffix
		"/xdg/triangulator/config.yaml",
		"/home/user/.config/triangulator/config.yaml",
		"/etc/triangulator/config.yaml",
	}

	if len(paths) != len(want) {
		t.Fatalf("SearchPaths() = %v, want %d entries", paths, len(want))
	}
	for i, w := range want {
		if w == "" {
			if !strings.HasSuffix(paths[i], ConfigFileName) {
				t.Errorf("SearchPaths()[%d] = %s, want suffix %s", i, paths[i], ConfigFileName)
			}
			continue
		}
		if paths[i] != w {
			t.Errorf("SearchPaths()[%d] = %s, want %s", i, paths[i], w)
		}
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.MaxPoints = 100

	summary := cfg.Summary()
	for _, want := range []string{":8080", "store", "Max points: 100", "Metrics: true"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() = %q, missing %q", summary, want)
		}
	}
}
