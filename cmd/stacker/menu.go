package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Start with a game picker menu",
		Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, Tab for the
scoreboard. After a game you return to the menu.

Examples:
  stacker menu
  stacker menu --fps 30
  stacker menu --db ./scores.db`,
		Args: cobra.NoArgs,
		RunE: runMenu,
	}
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom stacker config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
	return cmd
}

func runMenu(cmd *cobra.Command, _ []string) error {
	logger := loggerFromContext(cmd.Context())
	applyGameFlags()

	playLogger, closeLog, err := gameLogger(logger, flagLogFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", result.GameID, "error", err)
			continue
		}

		// A fresh seed per game unless the run is pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if _, err := tui.Run(game, store, cfg, playLogger); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
