// stacker is a terminal rendition of the 8-bit block stacking arcade game.
//
// Usage:
//
//	stacker list              - List available games
//	stacker play [game]       - Play a game (default: stacker)
//	stacker menu              - Start menu to pick games interactively
//	stacker serve             - Start SSH server for remote play
//	stacker scores <game>     - Show high scores and run stats for a game
//	stacker board             - Interactive scoreboard
//	stacker sim               - Run headless autopilot sessions
//	stacker config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.stacker/scores.db)
//	--verbose, -v   - Enable debug logging
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-stacker/internal/games/stacker"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stacker",
		Short: "Stacker - stack the blocks in your terminal",
		Long: `Stacker is a terminal version of the classic block stacking arcade game.
A row of blocks slides back and forth; press space to drop it onto the tower.
Whatever overhangs the row below is cut off. Reach the goal row to win.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and run statistics
  board    - Interactive scoreboard
  sim      - Run headless autopilot sessions
  config   - Print the effective configuration

Examples:
  stacker play
  stacker play stacker_wild --difficulty hard
  stacker serve --ssh :2222
  stacker sim --runs 100 --miss 0.05`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := log.InfoLevel
			if flagVerbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
			return nil
		},
	}

	root.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	root.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	root.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stacker/scores.db", "Path to scores database")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newListCmd(),
		newPlayCmd(),
		newMenuCmd(),
		newServeCmd(),
		newScoresCmd(),
		newBoardCmd(),
		newSimCmd(),
		newConfigCmd(),
	)
	return root
}
