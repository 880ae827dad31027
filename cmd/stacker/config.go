package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/config"
)

var flagConfigFormat string

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the stacker configuration that play would use, after the search
order and any difficulty preset are applied. The output is a valid config
file and can be saved to ~/.stacker/configs/stacker.yaml as a starting point.

Examples:
  stacker config
  stacker config --format toml > ~/.stacker/configs/stacker.toml
  stacker config --difficulty hard`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
	cmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom stacker config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	return cmd
}

func runConfig(cmd *cobra.Command, _ []string) error {
	format := config.Format(flagConfigFormat)
	if format != config.FormatYAML && format != config.FormatTOML {
		return fmt.Errorf("unknown format %q (want yaml or toml)", flagConfigFormat)
	}

	cfg, err := config.LoadStacker(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyStackerPreset(&cfg, preset)
		loggerFromContext(cmd.Context()).Debug("applied difficulty preset", "preset", preset)
	}

	return config.Encode(cmd.OutOrStdout(), cfg, format)
}
