package config

import (
	_ "embed"
)

//go:embed defaults/stacker.yaml
var defaultStackerYAML []byte

// DefaultStackerConfig returns the hard-coded stacker configuration.
// It mirrors defaults/stacker.yaml and backs it up if the embed cannot be parsed.
func DefaultStackerConfig() StackerConfig {
	return StackerConfig{
		Playfield: StackerPlayfield{
			Width:     256,
			BlockSize: 16,
			Margin:    16,
			CenterX:   128,
			BaseRow:   13,
		},
		Motion: StackerMotion{
			InitialSpeed:   16, // one pixel per frame
			SpeedIncrement: 4,
			Direction:      DirectionBounce,
		},
		Blocks: StackerBlocks{
			InitialCount: 4,
		},
		Goal: StackerGoal{
			WinHeight: 10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultStackerYAML
}
