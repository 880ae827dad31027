package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse the scoreboard interactively",
		Long: `Open the interactive scoreboard.

Tab / Shift+Tab switch games, Up/Down scroll, Esc or Q leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := openStore(loggerFromContext(cmd.Context()))
			if store != nil {
				defer store.Close()
			}

			cfg := terminalConfig()
			if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
				return fmt.Errorf("running scoreboard: %w", err)
			}
			return nil
		},
	}
}
