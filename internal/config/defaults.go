package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/patrol.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		MapsDir:  "./maps",
		DBPath:   "~/.patrol/runs.db",
		Workers:  0,
		Strategy: "concurrent",
		LogLevel: "info",
		Watch: WatchConfig{
			FPS:   20,
			Theme: "default",
		},
		Serve: ServeConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
