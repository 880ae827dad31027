package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

const autopilotPlayer = "autopilot"

var (
	flagSimRuns  int
	flagSimMiss  float64
	flagSimWild  bool
	flagSimStore bool
	flagSimMax   uint64
)

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run headless autopilot sessions",
		Long: `Play sessions without a terminal using the autopilot and print a summary.

The autopilot drops whenever the moving group lines up with the tower and,
with probability --miss per misaligned frame, presses early or late anyway.
Every run is seeded from --seed plus its index, so results are reproducible.

Examples:
  stacker sim
  stacker sim --runs 500 --miss 0.02 --seed 42
  stacker sim --wild --difficulty hard --store`,
		Args: cobra.NoArgs,
		RunE: runSim,
	}
	cmd.Flags().IntVar(&flagSimRuns, "runs", 20, "Number of sessions to play")
	cmd.Flags().Float64Var(&flagSimMiss, "miss", 0.01, "Probability of a stray press on a misaligned frame")
	cmd.Flags().BoolVar(&flagSimWild, "wild", false, "Use a random direction for every group")
	cmd.Flags().BoolVar(&flagSimStore, "store", false, "Record runs in the scores database")
	cmd.Flags().Uint64Var(&flagSimMax, "max-frames", 100000, "Frame limit per session")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom stacker config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	return cmd
}

// simSummary aggregates the results of a batch of sessions.
type simSummary struct {
	Runs        int
	Won         int
	Lost        int
	Unfinished  int
	TotalHeight int
	BestScore   int
	Frames      uint64
}

func (s simSummary) avgHeight() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalHeight) / float64(s.Runs)
}

// simParams resolves the session rules from the config flags.
func simParams(seed int64) (stacker.Params, error) {
	cfg, err := config.LoadStacker(flagConfig)
	if err != nil {
		return stacker.Params{}, err
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyStackerPreset(&cfg, preset)
	}
	p := stacker.ParamsFromConfig(cfg, seed)
	if flagSimWild {
		p.Direction = stacker.DirectionRandom
	}
	return p, nil
}

func runSim(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	params, err := simParams(seed)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var store *storage.Store
	if flagSimStore {
		if store = openStore(logger); store != nil {
			defer store.Close()
		}
	}

	gameID := stacker.GameID
	if params.Direction == stacker.DirectionRandom {
		gameID = stacker.WildGameID
	}

	logger.Debug("simulating", "runs", flagSimRuns, "miss", flagSimMiss, "seed", seed, "direction", params.Direction)
	sum, err := simulate(ctx, logger, store, gameID, params, flagSimRuns, flagSimMiss, flagSimMax)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), sum)
	return nil
}

// simulate plays runs sessions. Run i uses seed params.Seed+i for both the
// session and the autopilot.
func simulate(ctx context.Context, logger *log.Logger, store *storage.Store, gameID string, params stacker.Params, runs int, miss float64, maxFrames uint64) (simSummary, error) {
	var sum simSummary
	start := time.Now()

	for i := 0; i < runs; i++ {
		p := params
		p.Seed = params.Seed + int64(i)

		s := stacker.NewSession(p)
		bot := stacker.NewAutopilot(s, p.Seed, miss)
		tiles := stacker.NewTileMap(p.Columns(), p.BaseRow+1)

		out, err := stacker.RunSession(ctx, s, &stacker.FreeRunTicks{Max: maxFrames}, bot, tiles)
		switch {
		case errors.Is(err, stacker.ErrFrameLimit):
			sum.Unfinished++
		case err != nil:
			return sum, err
		}

		snap := s.Snapshot()
		sum.Runs++
		sum.Frames += snap.Frame
		sum.TotalHeight += snap.Stack.Height
		sum.BestScore = max(sum.BestScore, snap.Score)
		switch out.Phase {
		case stacker.PhaseWon:
			sum.Won++
		case stacker.PhaseGameOver:
			sum.Lost++
		}

		logger.Debug("run finished",
			"run", i+1,
			"seed", p.Seed,
			"outcome", out.Phase,
			"height", snap.Stack.Height,
			"score", snap.Score,
			"frames", snap.Frame,
			"presses", bot.Presses(),
		)

		if store != nil && out.Phase.Terminal() {
			if _, err := store.SaveRun(storage.RunRecord{
				GameID:  gameID,
				Outcome: out.Phase.String(),
				Height:  snap.Stack.Height,
				Score:   snap.Score,
				Frames:  int(snap.Frame),
				Player:  autopilotPlayer,
			}); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}

	logger.Info("simulation done", "runs", sum.Runs, "won", sum.Won, "elapsed", time.Since(start).Round(time.Millisecond))
	return sum, nil
}

func printSummary(w io.Writer, s simSummary) {
	winRate := 0.0
	if s.Runs > 0 {
		winRate = float64(s.Won) / float64(s.Runs) * 100
	}
	fmt.Fprintf(w, "Runs:        %d\n", s.Runs)
	fmt.Fprintf(w, "Won:         %d (%.1f%%)\n", s.Won, winRate)
	fmt.Fprintf(w, "Lost:        %d\n", s.Lost)
	if s.Unfinished > 0 {
		fmt.Fprintf(w, "Unfinished:  %d\n", s.Unfinished)
	}
	fmt.Fprintf(w, "Avg height:  %.2f\n", s.avgHeight())
	fmt.Fprintf(w, "Best score:  %d\n", s.BestScore)
	fmt.Fprintf(w, "Frames:      %d\n", s.Frames)
}
