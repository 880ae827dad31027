package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the encoding from a file extension; anything that is
// not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode parses data in the given format on top of the defaults, so files
// only need to name the fields they change.
func Decode(data []byte, format Format) (StackerConfig, error) {
	cfg := DefaultStackerConfig()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, err
	}
	if cfg.Motion.Direction == "" {
		cfg.Motion.Direction = DirectionBounce
	}
	return cfg, nil
}

// Encode writes cfg to w in the given format.
func Encode(w io.Writer, cfg StackerConfig, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
}

// LoadStacker loads the stacker configuration.
// Search order: customPath -> ~/.stacker/configs/stacker.{yaml,toml} -> ./configs/stacker.yaml -> embedded default
func LoadStacker(customPath string) (StackerConfig, error) {
	// A custom path is explicit, so any problem with it is reported
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	for _, name := range []string{"stacker.yaml", "stacker.toml"} {
		if userCfgPath := userConfigPath(name); userCfgPath != "" {
			if cfg, err := loadFile(userCfgPath); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "stacker.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Decode(defaultStackerYAML, FormatYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultStackerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile reads, decodes and validates one config file.
func loadFile(path string) (StackerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StackerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(bytes.TrimSpace(data), FormatForPath(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stacker", "configs", filename)
}
