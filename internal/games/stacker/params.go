// Package stacker implements the block stacking game.
//
// A group of blocks slides across the playfield; each press of the drop
// button locks the group onto the tower, trims whatever overhangs the row
// below, and respawns a (possibly narrower) group one row higher. Reaching the
// goal height wins; a drop that lands nothing loses.
//
// The package is split the way the frame loop uses it:
//   - Motion moves the group in 12:4 fixed point and derives its tile column.
//   - Resolver intersects the group with the locked row once per drop and
//     emits a TilePatch describing the background tiles that changed.
//   - GameSession ties both together behind AdvanceFrame.
//   - RunSession, TileMap and Autopilot are the headless host, renderer and
//     input used by the simulator; Game adapts a session to the registry.
package stacker

import (
	"github.com/vovakirdan/tui-stacker/internal/config"
)

// MaxGroupSize is the widest group a patch can describe.
const MaxGroupSize = config.MaxGroupSize

// DirectionPolicy decides which way a freshly spawned group moves.
type DirectionPolicy int

const (
	// DirectionBounce keeps the current direction across respawns; only the
	// playfield edges flip it.
	DirectionBounce DirectionPolicy = iota
	// DirectionRandom flips a seeded coin on every spawn.
	DirectionRandom
)

// String returns the config spelling of the policy.
func (d DirectionPolicy) String() string {
	if d == DirectionRandom {
		return config.DirectionRandom
	}
	return config.DirectionBounce
}

// Params holds the numeric rules of one session.
type Params struct {
	PlayfieldWidth int   // pixels
	BlockSize      int   // pixels per block side
	Margin         int   // bounce inset in pixels
	CenterX        int   // spawn center in pixels
	BaseRow        int   // tile row of the first group
	InitialSpeed   Fixed // per frame
	SpeedIncrement Fixed // added on every respawn
	InitialBlocks  int
	WinHeight      int
	Direction      DirectionPolicy
	Seed           int64
}

// ParamsFromConfig converts a validated config into session parameters.
func ParamsFromConfig(cfg config.StackerConfig, seed int64) Params {
	p := Params{
		PlayfieldWidth: cfg.Playfield.Width,
		BlockSize:      cfg.Playfield.BlockSize,
		Margin:         cfg.Playfield.Margin,
		CenterX:        cfg.Playfield.CenterX,
		BaseRow:        cfg.Playfield.BaseRow,
		InitialSpeed:   Fixed(cfg.Motion.InitialSpeed),
		SpeedIncrement: Fixed(cfg.Motion.SpeedIncrement),
		InitialBlocks:  cfg.Blocks.InitialCount,
		WinHeight:      cfg.Goal.WinHeight,
		Seed:           seed,
	}
	if cfg.Motion.Direction == config.DirectionRandom {
		p.Direction = DirectionRandom
	}
	return p
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultStackerConfig(), 0)
}

// Columns returns the playfield width in tiles.
func (p Params) Columns() int {
	return p.PlayfieldWidth / p.BlockSize
}

// GoalRow returns the tile row on which the winning group lands.
func (p Params) GoalRow() int {
	return p.BaseRow - p.WinHeight + 1
}
