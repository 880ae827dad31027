package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores <game>",
		Short: "Show high scores for a game",
		Long: `Display the best runs and win/loss statistics for the specified game.

Examples:
  stacker scores stacker
  stacker scores stacker_wild --limit 20
  stacker scores stacker --recent
  stacker scores stacker --clear`,
		Args: cobra.ExactArgs(1),
		RunE: runScores,
	}
	cmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	cmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	cmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs of the game")
	return cmd
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'stacker list' to see available games)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		loggerFromContext(cmd.Context()).Info("scores cleared", "game", gameID)
		fmt.Fprintf(out, "Cleared all scores for %s.\n", registry.Title(gameID))
		return nil
	}

	heading := "High Scores"
	fetch := store.TopRuns
	if flagScoresRecent {
		heading = "Recent Runs"
		fetch = store.RecentRuns
	}
	runs, err := fetch(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	stats, err := store.RunStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	high, err := store.HighScore(gameID)
	if err != nil {
		return fmt.Errorf("retrieving high score: %w", err)
	}

	fmt.Fprintf(out, "%s - %s\n", heading, registry.Title(gameID))
	fmt.Fprintf(out, "High score: %d\n", high)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'stacker play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-6s  %-12s  %s\n", "#", "Score", "Height", "Result", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "------", "------", "------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-6d  %-6s  %-12s  %s\n",
			i+1, r.Score, r.Height, r.Outcome, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Played %d, won %d, lost %d (%.0f%% wins). Best height %d, best score %d.\n",
		stats.Played, stats.Won, stats.Lost, stats.WinRate()*100, stats.BestHeight, stats.BestScore)
	return nil
}
