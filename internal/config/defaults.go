package config

import (
	_ "embed"
)

//go:embed defaults/crossing.yaml
var defaultCrossingYAML []byte

// DefaultCrossingConfig returns the built-in configuration.
func DefaultCrossingConfig() CrossingConfig {
	return CrossingConfig{
		Grid: GridConfig{
			Width:  15,
			Height: 9,
		},
		Player: PlayerConfig{
			StartX: -1,
		},
		Simulation: SimulationConfig{
			TickRate: 60,
		},
		Difficulty: DifficultyConfig{
			Enabled:  true,
			Alpha:    0.02,
			MaxScale: 0,
		},
	}
}
