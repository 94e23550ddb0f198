package config

import "fmt"

// Preset represents a named rule and pacing bundle.
type Preset string

const (
	PresetEasy    Preset = "easy"
	PresetNormal  Preset = "normal"
	PresetHard    Preset = "hard"
	PresetClassic Preset = "classic"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard, PresetClassic}
}

// ParsePreset validates a preset name.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", s)
}

// ApplyPreset modifies the config based on a preset.
// Easy only changes pacing; classic switches to rounded roll-off without
// vertical pushes.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Timing.TicksPerSecond = 6
		cfg.Timing.DeathPauseTicks = 18
	case PresetNormal:
		def := DefaultConfig()
		cfg.Timing = def.Timing
		cfg.Rules = def.Rules
	case PresetHard:
		cfg.Timing.TicksPerSecond = 12
		cfg.Timing.DeathPauseTicks = 8
		cfg.Rules.RollOff = "any"
		cfg.Rules.VerticalPush = false
	case PresetClassic:
		cfg.Rules.RollOff = "rounded"
		cfg.Rules.VerticalPush = false
	}
}
