// Package config provides YAML-based configuration loading for the patrol
// tool, with environment overrides.
package config

import (
	"fmt"
	"time"
)

// Config contains all configuration for the patrol tool.
type Config struct {
	MapsDir  string      `yaml:"maps_dir"`
	DBPath   string      `yaml:"db_path"`
	Workers  int         `yaml:"workers"` // 0 = runtime.NumCPU()
	Strategy string      `yaml:"strategy"`
	LogLevel string      `yaml:"log_level"`
	Watch    WatchConfig `yaml:"watch"`
	Serve    ServeConfig `yaml:"serve"`
}

// WatchConfig defines the terminal viewer parameters.
type WatchConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"` // "default", "neon" or "mono"
}

// ServeConfig defines the SSH server parameters.
type ServeConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Empty = ~/.patrol/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Log levels accepted in log_level.
var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Themes accepted in watch.theme.
var themes = map[string]bool{
	"default": true,
	"neon":    true,
	"mono":    true,
}

// Validate checks the configuration for values the tool cannot run with.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.Strategy == "" {
		return fmt.Errorf("config: strategy must not be empty")
	}
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	if c.Watch.FPS < 1 || c.Watch.FPS > 120 {
		return fmt.Errorf("config: watch.fps must be in 1..120, got %d", c.Watch.FPS)
	}
	if !themes[c.Watch.Theme] {
		return fmt.Errorf("config: unknown watch.theme %q", c.Watch.Theme)
	}
	if c.Serve.IdleTimeout < 0 {
		return fmt.Errorf("config: serve.idle_timeout must not be negative")
	}
	return nil
}
