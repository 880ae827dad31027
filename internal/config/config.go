// Package config provides YAML/TOML-based game configuration loading and
// difficulty presets for the stacker platform.
package config

import (
	"errors"
	"fmt"
)

// MaxGroupSize is the widest block group the game supports.
// Tile patches are sized from it, so configs may not exceed it.
const MaxGroupSize = 8

// MaxColumns is the widest playfield in blocks. Each block is two sub-tiles
// and patch coordinates are bytes, so column 127 is the last addressable one.
const MaxColumns = 128

// ErrInvalid is returned (wrapped) when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// StackerConfig contains all configuration for the stacking game.
type StackerConfig struct {
	Playfield StackerPlayfield `yaml:"playfield" toml:"playfield"`
	Motion    StackerMotion    `yaml:"motion" toml:"motion"`
	Blocks    StackerBlocks    `yaml:"blocks" toml:"blocks"`
	Goal      StackerGoal      `yaml:"goal" toml:"goal"`
}

// StackerPlayfield defines the playfield geometry in pixels.
type StackerPlayfield struct {
	Width     int `yaml:"width" toml:"width"`           // Playfield width in pixels
	BlockSize int `yaml:"block_size" toml:"block_size"` // Side of one block in pixels
	Margin    int `yaml:"margin" toml:"margin"`         // Bounce inset from each side
	CenterX   int `yaml:"center_x" toml:"center_x"`     // Spawn center of the group
	BaseRow   int `yaml:"base_row" toml:"base_row"`     // Tile row of the first group
}

// StackerMotion defines how the block group moves.
type StackerMotion struct {
	InitialSpeed   int    `yaml:"initial_speed" toml:"initial_speed"`     // 1/16 pixel per frame
	SpeedIncrement int    `yaml:"speed_increment" toml:"speed_increment"` // Added after every successful stack
	Direction      string `yaml:"direction" toml:"direction"`             // "bounce" or "random"
}

// StackerBlocks defines the block group.
type StackerBlocks struct {
	InitialCount int `yaml:"initial_count" toml:"initial_count"`
}

// StackerGoal defines the win condition.
type StackerGoal struct {
	WinHeight int `yaml:"win_height" toml:"win_height"`
}

// Direction policies accepted in StackerMotion.Direction.
const (
	DirectionBounce = "bounce"
	DirectionRandom = "random"
)

// Columns returns the number of tile columns in the playfield.
func (c StackerConfig) Columns() int {
	if c.Playfield.BlockSize <= 0 {
		return 0
	}
	return c.Playfield.Width / c.Playfield.BlockSize
}

// Validate checks that the configuration describes a playable game.
func (c StackerConfig) Validate() error {
	p := c.Playfield
	switch {
	case p.BlockSize <= 0:
		return fmt.Errorf("%w: playfield.block_size must be positive", ErrInvalid)
	case p.Width < p.BlockSize:
		return fmt.Errorf("%w: playfield.width %d is narrower than one block", ErrInvalid, p.Width)
	case p.Margin < 0:
		return fmt.Errorf("%w: playfield.margin must not be negative", ErrInvalid)
	case c.Columns() > MaxColumns:
		return fmt.Errorf("%w: playfield has %d columns, at most %d fit a patch", ErrInvalid, c.Columns(), MaxColumns)
	case p.BaseRow < 0 || p.BaseRow > 126:
		return fmt.Errorf("%w: playfield.base_row %d out of range", ErrInvalid, p.BaseRow)
	}

	if c.Blocks.InitialCount <= 0 || c.Blocks.InitialCount > MaxGroupSize {
		return fmt.Errorf("%w: blocks.initial_count must be in [1, %d], got %d",
			ErrInvalid, MaxGroupSize, c.Blocks.InitialCount)
	}
	if span := 2*p.Margin + c.Blocks.InitialCount*p.BlockSize; span > p.Width {
		return fmt.Errorf("%w: %d blocks do not fit between the margins (%d > %d)",
			ErrInvalid, c.Blocks.InitialCount, span, p.Width)
	}

	if c.Motion.InitialSpeed <= 0 {
		return fmt.Errorf("%w: motion.initial_speed must be positive", ErrInvalid)
	}
	if c.Motion.SpeedIncrement < 0 {
		return fmt.Errorf("%w: motion.speed_increment must not be negative", ErrInvalid)
	}
	switch c.Motion.Direction {
	case "", DirectionBounce, DirectionRandom:
	default:
		return fmt.Errorf("%w: motion.direction %q (want %q or %q)",
			ErrInvalid, c.Motion.Direction, DirectionBounce, DirectionRandom)
	}

	if c.Goal.WinHeight <= 0 {
		return fmt.Errorf("%w: goal.win_height must be positive", ErrInvalid)
	}
	if c.Goal.WinHeight > p.BaseRow+1 {
		return fmt.Errorf("%w: goal.win_height %d needs more rows than base_row %d provides",
			ErrInvalid, c.Goal.WinHeight, p.BaseRow)
	}
	return nil
}
