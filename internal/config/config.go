// Package config provides YAML-based configuration loading and difficulty
// management for the lane-crossing game.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// MinGridHeight is the smallest playable window: one block plus two rows.
const MinGridHeight = 9

// ErrUnknownPreset is returned when a difficulty preset name is not recognised.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// CrossingConfig contains all configuration for the lane-crossing game.
type CrossingConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Player     PlayerConfig     `yaml:"player"`
	Simulation SimulationConfig `yaml:"simulation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the visible board.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig defines where the player token starts.
type PlayerConfig struct {
	StartX int `yaml:"start_x"` // -1 = centre column
}

// SimulationConfig defines the fixed-tick scheduler.
type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// DifficultyConfig defines how lane speed grows with scroll distance.
type DifficultyConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Alpha    float64 `yaml:"alpha"`     // Scale added per scrolled row
	MaxScale float64 `yaml:"max_scale"` // 0 = uncapped
}

// Normalize clamps values into their playable ranges.
func (c *CrossingConfig) Normalize() {
	if c.Grid.Width < 1 {
		c.Grid.Width = 1
	}
	if c.Grid.Height < MinGridHeight {
		c.Grid.Height = MinGridHeight
	}
	if c.Player.StartX >= c.Grid.Width {
		c.Player.StartX = c.Grid.Width - 1
	}
	if c.Player.StartX < -1 {
		c.Player.StartX = -1
	}
	if c.Simulation.TickRate < 1 {
		c.Simulation.TickRate = 1
	}
	if c.Difficulty.Alpha < 0 {
		c.Difficulty.Alpha = 0
	}
	if c.Difficulty.MaxScale < 0 {
		c.Difficulty.MaxScale = 0
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a user-supplied name into a preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// AlphaForPreset returns the per-row speed growth for a preset.
func AlphaForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.01
	case DifficultyHard:
		return 0.04
	case DifficultyFixed:
		return 0
	default:
		return 0.02
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *CrossingConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Alpha = AlphaForPreset(preset)
}
