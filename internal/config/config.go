package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Runtime RuntimeConfig `toml:"runtime"`
	Scene   SceneConfig   `toml:"scene"`
	Script  ScriptConfig  `toml:"script"`
	Logging LoggingConfig `toml:"logging"`
}

type RuntimeConfig struct {
	// SimulationHz is the fixed-rate simulation processor's frequency.
	SimulationHz float64 `toml:"simulation_hz"`
	// PumpResolution is the loop's pass granularity; it bounds scheduling
	// jitter for every ticker.
	PumpResolution time.Duration `toml:"pump_resolution"`
	// ReportInterval throttles the frame-synced report processor.
	ReportInterval time.Duration `toml:"report_interval"`
}

type SceneConfig struct {
	Manifest string `toml:"manifest"`
}

type ScriptConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

// Load reads the TOML file at path over built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration, used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			SimulationHz:   60,
			PumpResolution: 2 * time.Millisecond,
			ReportInterval: 1 * time.Second,
		},
		Scene: SceneConfig{
			Manifest: "data/scene.yaml",
		},
		Script: ScriptConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
