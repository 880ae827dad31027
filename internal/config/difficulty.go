package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string onto a preset. Unknown or empty strings yield "",
// which leaves the loaded config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyStackerPreset modifies the config based on a difficulty preset.
// Fixed keeps the configured starting speed but disables the per-stack speed-up.
func ApplyStackerPreset(cfg *StackerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Motion.InitialSpeed = 12
		cfg.Motion.SpeedIncrement = 2
	case DifficultyNormal:
		cfg.Motion.InitialSpeed = 16
		cfg.Motion.SpeedIncrement = 4
	case DifficultyHard:
		cfg.Motion.InitialSpeed = 24
		cfg.Motion.SpeedIncrement = 6
		if cfg.Blocks.InitialCount > 3 {
			cfg.Blocks.InitialCount = 3
		}
	case DifficultyFixed:
		cfg.Motion.SpeedIncrement = 0
	}
}
