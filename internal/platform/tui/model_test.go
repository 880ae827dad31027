package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/games/stacker"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

// step feeds an optional key and one tick through the model.
func step(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	var next tea.Model = m
	for _, k := range keys {
		next, _ = next.(Model).Update(k)
	}
	next, _ = next.(Model).Update(TickMsg{})
	return next.(Model)
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 11
	m := NewModel(stacker.New(), store, cfg, nil, "tester")
	m.Init()
	return m
}

func TestModelRecordsFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)

	// Start from the title, then drop on every frame: each group lands
	// right where it spawned.
	m = step(t, m, spaceKey)
	for i := 0; i < 10; i++ {
		m = step(t, m, spaceKey)
	}

	if !m.gameState.GameOver || !m.gameState.Won {
		t.Fatalf("expected a won run, got %+v", m.gameState)
	}
	if m.LastRunID() == "" {
		t.Fatal("finished run was not stored")
	}

	// Further ticks on the result screen do not store it again
	m = step(t, m)
	m = step(t, m)

	stats, err := store.RunStats(stacker.GameID)
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if stats.Played != 1 || stats.Won != 1 || stats.BestHeight != 10 {
		t.Errorf("stats = %+v", stats)
	}

	run, err := store.RunByID(m.LastRunID())
	if err != nil || run == nil {
		t.Fatalf("RunByID() = %v, %v", run, err)
	}
	if run.Player != "tester" || run.Score != 40 {
		t.Errorf("stored run = %+v", run)
	}

	high, _ := store.HighScore(stacker.GameID)
	if high != 40 {
		t.Errorf("HighScore() = %d, expected 40", high)
	}

	// Retry re-arms recording
	m = step(t, m, runeKey('r'))
	if m.gameState.GameOver {
		t.Fatal("retry should start a new run")
	}
	if m.recorded {
		t.Error("recording should be re-armed for the new run")
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, spaceKey)
	for i := 0; i < 10; i++ {
		m = step(t, m, spaceKey)
	}
	if !m.gameState.GameOver {
		t.Fatal("expected the run to end")
	}
	if m.LastRunID() != "" {
		t.Error("no run ID without storage")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := newTestModel(t, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("esc on the title screen should go back")
	}
	if cmd != nil {
		t.Error("embedded models should not quit the program on back")
	}

	next, cmd = m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	if !strings.Contains(m.View(), "S T A C K E R") {
		t.Error("title screen should be rendered")
	}
}

func TestModelWarnsOnConfigFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("goal:\n  win_height: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	stacker.SetConfigPath(path)
	t.Cleanup(func() { stacker.SetConfigPath("") })

	var buf bytes.Buffer
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	m := NewModel(stacker.New(), nil, cfg, log.New(&buf), "tester")
	m.Init()

	if !strings.Contains(buf.String(), "config unusable") || !strings.Contains(buf.String(), "broken.yaml") {
		t.Errorf("expected a config warning, got %q", buf.String())
	}

	// The game still plays with the built-in rules
	m = step(t, m, spaceKey)
	if m.gameState.GameOver {
		t.Error("game should be running on defaults")
	}
}
