// Package config provides YAML-based configuration loading and rule presets
// for rockfall.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rockfall/internal/world"
)

// Config contains all configuration for rockfall.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Timing  TimingConfig  `yaml:"timing"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Locale  string        `yaml:"locale"`
	Server  ServerConfig  `yaml:"server"`
}

// RulesConfig selects the simulation rules.
type RulesConfig struct {
	RollOff      string `yaml:"roll_off"`      // "any" or "rounded"
	VerticalPush bool   `yaml:"vertical_push"` // allow pushing rocks up and down
}

// TimingConfig defines the host tick loop.
type TimingConfig struct {
	TicksPerSecond     int `yaml:"ticks_per_second"`
	DeathPauseTicks    int `yaml:"death_pause_ticks"`
	CompletePauseTicks int `yaml:"complete_pause_ticks"`
}

// LevelsConfig selects the level set.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`   // directory or .zip; empty for built-in levels
	Start int    `yaml:"start"` // 1-based
}

// StorageConfig locates the progress database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	MetricsAddr string        `yaml:"metrics_addr"` // empty disables /metrics
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"`
}

// Validate checks enum values and ranges.
func (c Config) Validate() error {
	var errs []error

	if _, err := world.ParseRollOff(c.Rules.RollOff); err != nil {
		errs = append(errs, fmt.Errorf("rules.roll_off: %w", err))
	}
	if c.Timing.TicksPerSecond <= 0 || c.Timing.TicksPerSecond > 120 {
		errs = append(errs, fmt.Errorf("timing.ticks_per_second: %d not in 1..120", c.Timing.TicksPerSecond))
	}
	if c.Timing.DeathPauseTicks < 0 {
		errs = append(errs, fmt.Errorf("timing.death_pause_ticks: must not be negative"))
	}
	if c.Timing.CompletePauseTicks < 0 {
		errs = append(errs, fmt.Errorf("timing.complete_pause_ticks: must not be negative"))
	}
	if c.Levels.Start < 1 {
		errs = append(errs, fmt.Errorf("levels.start: %d, levels are numbered from 1", c.Levels.Start))
	}
	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout: must not be negative"))
	}
	if c.Server.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("server.max_sessions: must not be negative"))
	}

	return errors.Join(errs...)
}

// WorldRules converts the rules section. Call Validate first.
func (c Config) WorldRules() world.Rules {
	rollOff, _ := world.ParseRollOff(c.Rules.RollOff)
	return world.Rules{
		RollOff:      rollOff,
		VerticalPush: c.Rules.VerticalPush,
	}
}

// TickInterval returns the duration of one tick.
func (c Config) TickInterval() time.Duration {
	if c.Timing.TicksPerSecond <= 0 {
		return time.Second / time.Duration(DefaultConfig().Timing.TicksPerSecond)
	}
	return time.Second / time.Duration(c.Timing.TicksPerSecond)
}
