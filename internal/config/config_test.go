package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultStackerConfig().Validate(); err != nil {
		t.Fatalf("DefaultStackerConfig() is invalid: %v", err)
	}
	if DefaultStackerConfig().Columns() != 16 {
		t.Errorf("Columns() = %d, expected 16", DefaultStackerConfig().Columns())
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Decode(DefaultYAML(), FormatYAML)
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultStackerConfig() {
		t.Errorf("embedded YAML = %+v, hard-coded = %+v", cfg, DefaultStackerConfig())
	}
}

func TestLoadStackerCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("motion:\n  initial_speed: 32\n  direction: random\ngoal:\n  win_height: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadStacker(path)
	if err != nil {
		t.Fatalf("LoadStacker() failed: %v", err)
	}
	if cfg.Motion.InitialSpeed != 32 {
		t.Errorf("InitialSpeed = %d, expected 32", cfg.Motion.InitialSpeed)
	}
	if cfg.Motion.Direction != DirectionRandom {
		t.Errorf("Direction = %q, expected random", cfg.Motion.Direction)
	}
	if cfg.Goal.WinHeight != 5 {
		t.Errorf("WinHeight = %d, expected 5", cfg.Goal.WinHeight)
	}
	// Untouched fields keep their defaults
	if cfg.Blocks.InitialCount != 4 {
		t.Errorf("InitialCount = %d, expected default 4", cfg.Blocks.InitialCount)
	}
}

func TestLoadStackerCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte("[motion]\nspeed_increment = 0\n\n[blocks]\ninitial_count = 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadStacker(path)
	if err != nil {
		t.Fatalf("LoadStacker() failed: %v", err)
	}
	if cfg.Motion.SpeedIncrement != 0 {
		t.Errorf("SpeedIncrement = %d, expected 0", cfg.Motion.SpeedIncrement)
	}
	if cfg.Blocks.InitialCount != 3 {
		t.Errorf("InitialCount = %d, expected 3", cfg.Blocks.InitialCount)
	}
	if cfg.Motion.InitialSpeed != 16 {
		t.Errorf("InitialSpeed = %d, expected default 16", cfg.Motion.InitialSpeed)
	}
}

func TestLoadStackerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadStacker(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("goal: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStacker(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("blocks:\n  initial_count: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadStacker(invalid)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("oversized group should wrap ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StackerConfig)
	}{
		{"zero block size", func(c *StackerConfig) { c.Playfield.BlockSize = 0 }},
		{"negative margin", func(c *StackerConfig) { c.Playfield.Margin = -1 }},
		{"group wider than playfield", func(c *StackerConfig) { c.Playfield.Margin = 100 }},
		{"zero blocks", func(c *StackerConfig) { c.Blocks.InitialCount = 0 }},
		{"zero speed", func(c *StackerConfig) { c.Motion.InitialSpeed = 0 }},
		{"negative increment", func(c *StackerConfig) { c.Motion.SpeedIncrement = -4 }},
		{"unknown direction", func(c *StackerConfig) { c.Motion.Direction = "sideways" }},
		{"zero win height", func(c *StackerConfig) { c.Goal.WinHeight = 0 }},
		{"win height above top row", func(c *StackerConfig) { c.Goal.WinHeight = 15 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultStackerConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestValidateColumnLimit(t *testing.T) {
	cfg := DefaultStackerConfig()
	cfg.Playfield.Width = MaxColumns * cfg.Playfield.BlockSize
	cfg.Playfield.CenterX = cfg.Playfield.Width / 2
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() with %d columns = %v, expected nil", cfg.Columns(), err)
	}

	cfg.Playfield.Width += cfg.Playfield.BlockSize
	if cfg.Columns() != MaxColumns+1 {
		t.Fatalf("Columns() = %d, expected %d", cfg.Columns(), MaxColumns+1)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() with %d columns = %v, expected ErrInvalid", cfg.Columns(), err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			cfg := DefaultStackerConfig()
			cfg.Goal.WinHeight = 7

			var buf bytes.Buffer
			if err := Encode(&buf, cfg, format); err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			got, err := Decode(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Decode() failed: %v\n%s", err, buf.String())
			}
			if got != cfg {
				t.Errorf("round trip = %+v, expected %+v", got, cfg)
			}
		})
	}
}

func TestApplyStackerPreset(t *testing.T) {
	cfg := DefaultStackerConfig()
	ApplyStackerPreset(&cfg, DifficultyHard)
	if cfg.Motion.InitialSpeed != 24 || cfg.Motion.SpeedIncrement != 6 || cfg.Blocks.InitialCount != 3 {
		t.Errorf("hard preset not applied: %+v", cfg)
	}

	cfg = DefaultStackerConfig()
	ApplyStackerPreset(&cfg, DifficultyFixed)
	if cfg.Motion.SpeedIncrement != 0 || cfg.Motion.InitialSpeed != 16 {
		t.Errorf("fixed preset should only disable the speed-up: %+v", cfg)
	}

	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse as empty")
	}
	if ParsePreset("easy") != DifficultyEasy {
		t.Error("easy should parse")
	}
}
