package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// EmbeddedSource names the built-in configuration.
const EmbeddedSource = "embedded"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Size:          4,
			StartingTiles: 2,
		},
		Animation: AnimationConfig{
			SlideTicks: 8,
			PopTicks:   6,
		},
		TickRate: 60,
		Source:   EmbeddedSource,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
