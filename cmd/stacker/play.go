package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [game]",
		Short: "Play a game",
		Long: `Start playing the specified game (default: stacker).

Controls:
  Space/Up   - Drop the moving blocks (also starts a run)
  P          - Pause
  R          - Retry (after the run ends)
  Esc/B      - Leave (from the title, pause or result screen)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slow start, gentle speed-up
  normal - The cartridge's speeds
  hard   - Fast start, steep speed-up, at most three blocks
  fixed  - No speed-up, stays at the config's initial speed

Examples:
  stacker play
  stacker play stacker_wild
  stacker play --difficulty hard
  stacker play --config ./my-stacker.toml --log-file stacker.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlay,
	}
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom stacker config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	gameID := stacker.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'stacker list' to see available games)", gameID)
	}

	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	playLogger, closeLog, err := gameLogger(logger, flagLogFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runID, err := tui.Run(game, store, terminalConfig(), playLogger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if store != nil && runID != "" {
		if err := printLastRun(cmd.OutOrStdout(), store, runID); err != nil {
			logger.Warn("could not read back the last run", "run_id", runID, "error", err)
		}
	}
	return nil
}

// printLastRun prints the stored record of the run that ended the session.
func printLastRun(w io.Writer, store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}
	fmt.Fprintf(w, "Last run: %s at height %d, score %d (%d frames)\n", run.Outcome, run.Height, run.Score, run.Frames)
	fmt.Fprintf(w, "Run ID:   %s\n", run.RunID)
	return nil
}

// applyGameFlags hands the config and difficulty flags to the game package
// before any game is created.
func applyGameFlags() {
	stacker.SetConfigPath(flagConfig)
	stacker.SetDifficultyPreset(flagDifficulty)
}

// terminalConfig builds the runtime config from the global flags and the
// current terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Games still work without it, so a
// failure is only a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
