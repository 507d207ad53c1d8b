// Package config loads the YAML game configuration.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned for configurations that cannot run a game.
var ErrInvalid = errors.New("config: invalid configuration")

// Board size limits accepted from configuration.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)

// Config is the complete game configuration.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	TickRate  int             `yaml:"tick_rate"`

	// Source is where the configuration was read from.
	Source string `yaml:"-"`
}

// BoardConfig defines the board shape.
type BoardConfig struct {
	Size          int `yaml:"size"`
	StartingTiles int `yaml:"starting_tiles"`
}

// AnimationConfig defines move animation lengths in ticks.
type AnimationConfig struct {
	SlideTicks int `yaml:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	if c.Board.Size < MinBoardSize || c.Board.Size > MaxBoardSize {
		return fmt.Errorf("%w: board.size %d outside [%d, %d]", ErrInvalid, c.Board.Size, MinBoardSize, MaxBoardSize)
	}
	if c.Board.StartingTiles < 0 || c.Board.StartingTiles > c.Board.Size*c.Board.Size {
		return fmt.Errorf("%w: board.starting_tiles %d outside [0, %d]", ErrInvalid, c.Board.StartingTiles, c.Board.Size*c.Board.Size)
	}
	if c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0 {
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalid)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	}
	return nil
}
