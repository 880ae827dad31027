package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)
	if loggerFromContext(ctx) != logger {
		t.Error("loggerFromContext should return the attached logger")
	}

	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, stacker.GameID) || !strings.Contains(out, stacker.WildGameID) {
		t.Errorf("list output missing games: %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--format", "toml", "--difficulty", "fixed")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}

	cfg, err := config.Decode([]byte(out), config.FormatTOML)
	if err != nil {
		t.Fatalf("config output is not valid TOML: %v\n%s", err, out)
	}
	if cfg.Motion.SpeedIncrement != 0 {
		t.Errorf("fixed preset should disable the speed-up, got %d", cfg.Motion.SpeedIncrement)
	}

	if _, err := execute(t, "config", "--format", "json"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestScoresUnknownGame(t *testing.T) {
	if _, err := execute(t, "scores", "tetris", "--db", filepath.Join(t.TempDir(), "s.db")); err == nil {
		t.Error("scores for an unknown game should fail")
	}
}

func TestSimulatePerfectAutopilot(t *testing.T) {
	p := stacker.DefaultParams()
	p.Seed = 3

	sum, err := simulate(context.Background(), newLogger(io.Discard, log.InfoLevel), nil, stacker.GameID, p, 5, 0, 100000)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if sum.Runs != 5 || sum.Won != 5 {
		t.Errorf("a flawless autopilot should win every run, got %+v", sum)
	}
	if sum.avgHeight() != float64(p.WinHeight) {
		t.Errorf("avgHeight() = %v", sum.avgHeight())
	}
	if sum.BestScore != p.WinHeight*p.InitialBlocks {
		t.Errorf("BestScore = %d", sum.BestScore)
	}
}

func TestSimulateStoresRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sim.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	p := stacker.DefaultParams()
	p.Direction = stacker.DirectionRandom
	p.Seed = 100

	a, err := simulate(context.Background(), newLogger(io.Discard, log.InfoLevel), store, stacker.WildGameID, p, 8, 0.05, 100000)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	// Same seed, same results
	b, err := simulate(context.Background(), newLogger(io.Discard, log.InfoLevel), nil, stacker.WildGameID, p, 8, 0.05, 100000)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if a != b {
		t.Errorf("simulations differ: %+v vs %+v", a, b)
	}

	stats, err := store.RunStats(stacker.WildGameID)
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if stats.Played != a.Won+a.Lost {
		t.Errorf("stored %d runs, expected %d", stats.Played, a.Won+a.Lost)
	}

	runs, _ := store.RecentRuns(stacker.WildGameID, 1)
	if len(runs) == 1 && runs[0].Player != autopilotPlayer {
		t.Errorf("Player = %q", runs[0].Player)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, simSummary{Runs: 4, Won: 1, Lost: 3, TotalHeight: 22, BestScore: 40})
	out := buf.String()
	for _, want := range []string{"Runs:        4", "(25.0%)", "Avg height:  5.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func seedScores(t *testing.T, dbPath string) string {
	t.Helper()
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var last string
	for _, r := range []storage.RunRecord{
		{GameID: stacker.GameID, Outcome: "won", Height: 10, Score: 40, Frames: 900},
		{GameID: stacker.GameID, Outcome: "lost", Height: 3, Score: 9, Frames: 200},
	} {
		if _, err := store.SaveScore(r.GameID, r.Score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
		run, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		last = run.RunID
	}
	return last
}

func TestScoresCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	seedScores(t, dbPath)

	out, err := execute(t, "scores", stacker.GameID, "--db", dbPath)
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	for _, want := range []string{"High Scores - Stacker", "High score: 40", "Played 2, won 1, lost 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "scores", stacker.GameID, "--db", dbPath, "--recent", "--limit", "1")
	if err != nil {
		t.Fatalf("scores --recent failed: %v", err)
	}
	if !strings.Contains(out, "Recent Runs - Stacker") || !strings.Contains(out, "lost") {
		t.Errorf("recent output should list the latest run first:\n%s", out)
	}
	if strings.Contains(out, "won     ") {
		t.Errorf("limit 1 should only show the latest run:\n%s", out)
	}

	if _, err := execute(t, "scores", stacker.GameID, "--db", dbPath, "--clear"); err != nil {
		t.Fatalf("scores --clear failed: %v", err)
	}
	out, err = execute(t, "scores", stacker.GameID, "--db", dbPath)
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	if !strings.Contains(out, "High score: 0") || !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("scores should be empty after clear:\n%s", out)
	}
}

func TestPrintLastRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	runID := seedScores(t, dbPath)

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := printLastRun(&buf, store, runID); err != nil {
		t.Fatalf("printLastRun() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "lost at height 3, score 9") || !strings.Contains(buf.String(), runID) {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}

	if err := printLastRun(&buf, store, "no-such-run"); err == nil {
		t.Error("printLastRun() should fail for an unknown run")
	}
}
