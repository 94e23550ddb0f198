package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/rockfall.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It matches defaults/rockfall.yaml.
func DefaultConfig() Config {
	return Config{
		Rules: RulesConfig{
			RollOff:      "any",
			VerticalPush: true,
		},
		Timing: TimingConfig{
			TicksPerSecond:     8,
			DeathPauseTicks:    12,
			CompletePauseTicks: 16,
		},
		Levels: LevelsConfig{
			Dir:   "",
			Start: 1,
		},
		Storage: StorageConfig{
			DBPath: "~/.rockfall/rockfall.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			SSHAddr:     ":2222",
			HostKeyPath: "~/.rockfall/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
			MaxSessions: 32,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
