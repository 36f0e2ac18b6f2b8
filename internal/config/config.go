package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Simulation  SimulationConfig  `toml:"simulation"`
	Physics     PhysicsConfig     `toml:"physics"`
	Interaction InteractionConfig `toml:"interaction"`
	Scripting   ScriptingConfig   `toml:"scripting"`
	Scene       SceneConfig       `toml:"scene"`
	Logging     LoggingConfig     `toml:"logging"`
	Profile     ProfileConfig     `toml:"profile"`
}

type SimulationConfig struct {
	FixedStep     time.Duration `toml:"fixed_step"`
	Steps         int           `toml:"steps"`
	MaxSubSteps   int           `toml:"max_substeps"`
	TimeScale     float64       `toml:"time_scale"` // used when the scene sets none
	SnapshotEvery int           `toml:"snapshot_every"`
}

type PhysicsConfig struct {
	GravityX float64 `toml:"gravity_x"`
	GravityY float64 `toml:"gravity_y"`
	KillY    float64 `toml:"kill_y"` // bodies below this are destroyed
}

type InteractionConfig struct {
	Stiffness      float64 `toml:"stiffness"`
	Damping        float64 `toml:"damping"`
	OrthoHeight    float64 `toml:"ortho_height"`
	ViewportWidth  int     `toml:"viewport_width"`
	ViewportHeight int     `toml:"viewport_height"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // empty disables scripting
}

type SceneConfig struct {
	Path string `toml:"path"` // empty uses the built-in box-and-platform scene
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu" or "mem"
	Path string `toml:"path"`
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			FixedStep:     time.Second / 60,
			Steps:         600,
			MaxSubSteps:   5,
			TimeScale:     1.0,
			SnapshotEvery: 1,
		},
		Physics: PhysicsConfig{
			GravityX: 0,
			GravityY: -9.81,
			KillY:    -100,
		},
		Interaction: InteractionConfig{
			Stiffness:      20,
			Damping:        0.8,
			OrthoHeight:    10,
			ViewportWidth:  1280,
			ViewportHeight: 720,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = multierr.Append(errs, fmt.Errorf(format, args...))
		}
	}
	s := c.Simulation
	check(s.FixedStep <= 0, "simulation.fixed_step must be positive, got %s", s.FixedStep)
	check(s.Steps < 0, "simulation.steps must not be negative, got %d", s.Steps)
	check(s.MaxSubSteps < 1, "simulation.max_substeps must be at least 1, got %d", s.MaxSubSteps)
	check(s.TimeScale < 0, "simulation.time_scale must not be negative, got %v", s.TimeScale)
	check(s.SnapshotEvery < 1, "simulation.snapshot_every must be at least 1, got %d", s.SnapshotEvery)

	i := c.Interaction
	check(i.Stiffness < 0, "interaction.stiffness must not be negative, got %v", i.Stiffness)
	check(i.Damping < 0, "interaction.damping must not be negative, got %v", i.Damping)
	check(i.OrthoHeight <= 0, "interaction.ortho_height must be positive, got %v", i.OrthoHeight)
	check(i.ViewportWidth <= 0 || i.ViewportHeight <= 0,
		"interaction viewport must be positive, got %dx%d", i.ViewportWidth, i.ViewportHeight)

	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.format %q is not json or console", c.Logging.Format))
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		errs = multierr.Append(errs, fmt.Errorf("profile.mode %q is not cpu or mem", c.Profile.Mode))
	}
	return errs
}

// ErrNoConfig is returned by LoadOptional when the path is empty.
var ErrNoConfig = errors.New("no config path")

// LoadOptional loads path, or returns Default and ErrNoConfig when path is "".
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Default(), ErrNoConfig
	}
	return Load(path)
}
