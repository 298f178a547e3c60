package config

import "strings"

// ProviderMode selects where point sets are fetched from
type ProviderMode string

const (
	ProviderStore ProviderMode = "store" // Local sqlite repository
	ProviderHTTP  ProviderMode = "http"  // Remote point set manager
)

// ParseProviderMode converts a string to ProviderMode, defaulting to ProviderStore
func ParseProviderMode(s string) ProviderMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "http":
		return ProviderHTTP
	default:
		return ProviderStore
	}
}

// Valid reports whether m is a known mode
func (m ProviderMode) Valid() bool {
	return m == ProviderStore || m == ProviderHTTP
}

// LogFormat selects the slog handler
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// ParseLogFormat converts a string to LogFormat, defaulting to LogFormatText
func ParseLogFormat(s string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return LogFormatJSON
	}
	return LogFormatText
}
