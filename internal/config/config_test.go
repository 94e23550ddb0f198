package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rockfall/internal/world"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	return home, work
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", source)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	write(t, filepath.Join(work, "configs", FileName), "timing:\n  ticks_per_second: 10\n")
	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("configs", FileName), source)
	assert.Equal(t, 10, cfg.Timing.TicksPerSecond)

	// User config wins over the local one
	userPath := filepath.Join(home, ".rockfall", "config.yaml")
	write(t, userPath, "timing:\n  ticks_per_second: 20\n")
	cfg, source, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, userPath, source)
	assert.Equal(t, 20, cfg.Timing.TicksPerSecond)

	// Explicit path wins over both
	custom := filepath.Join(work, "custom.yaml")
	write(t, custom, "timing:\n  ticks_per_second: 30\n")
	cfg, source, err = Load(custom)
	require.NoError(t, err)
	assert.Equal(t, custom, source)
	assert.Equal(t, 30, cfg.Timing.TicksPerSecond)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	_, work := isolate(t)
	custom := filepath.Join(work, "partial.yaml")
	write(t, custom, "rules:\n  roll_off: rounded\n  vertical_push: false\nserver:\n  idle_timeout: 90s\n")

	cfg, _, err := Load(custom)
	require.NoError(t, err)

	assert.Equal(t, world.ClassicRules(), cfg.WorldRules())
	assert.Equal(t, 90*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, DefaultConfig().Timing, cfg.Timing)
	assert.Equal(t, DefaultConfig().Storage, cfg.Storage)
}

func TestLoadMissingCustomPath(t *testing.T) {
	isolate(t)
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, work := isolate(t)
	custom := filepath.Join(work, "bad.yaml")
	write(t, custom, "rules:\n  roll_off: sideways\ntiming:\n  ticks_per_second: 0\nlog:\n  level: loud\n")

	_, _, err := Load(custom)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules.roll_off")
	assert.Contains(t, err.Error(), "timing.ticks_per_second")
	assert.Contains(t, err.Error(), "log.level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"rounded", func(c *Config) { c.Rules.RollOff = "rounded" }, true},
		{"bad roll off", func(c *Config) { c.Rules.RollOff = "square" }, false},
		{"zero rate", func(c *Config) { c.Timing.TicksPerSecond = 0 }, false},
		{"negative pause", func(c *Config) { c.Timing.DeathPauseTicks = -1 }, false},
		{"level zero", func(c *Config) { c.Levels.Start = 0 }, false},
		{"debug log", func(c *Config) { c.Log.Level = "debug" }, true},
		{"negative sessions", func(c *Config) { c.Server.MaxSessions = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing.TicksPerSecond = 10
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())
}

func TestExpandHome(t *testing.T) {
	home, _ := isolate(t)
	assert.Equal(t, filepath.Join(home, ".rockfall", "x.db"), ExpandHome("~/.rockfall/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandHome("/abs/x.db"))
	assert.Equal(t, "rel/x.db", ExpandHome("rel/x.db"))
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()

	ApplyPreset(&cfg, PresetClassic)
	assert.Equal(t, world.ClassicRules(), cfg.WorldRules())

	ApplyPreset(&cfg, PresetNormal)
	assert.Equal(t, world.DefaultRules(), cfg.WorldRules())

	ApplyPreset(&cfg, PresetEasy)
	assert.Equal(t, 6, cfg.Timing.TicksPerSecond)
	assert.NoError(t, cfg.Validate())

	_, err := ParsePreset("nightmare")
	assert.Error(t, err)
	p, err := ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, PresetHard, p)
}
