package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stacker/internal/storage"
)

func TestScoreboardShowsHighScoreAndStats(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := NewScoreboardModel(store, 100, 30)
	gameID := m.games[0].ID
	store.SaveScore(gameID, 40)
	store.SaveRun(storage.RunRecord{GameID: gameID, Outcome: "won", Height: 10, Score: 40})
	store.SaveRun(storage.RunRecord{GameID: gameID, Outcome: "lost", Height: 2, Score: 6})

	m = NewScoreboardModel(store, 100, 30)
	view := m.View()
	for _, want := range []string{"HI 40", "played 2", "won 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if len(m.runs) != 2 || m.runs[0].Score != 40 {
		t.Errorf("runs = %+v, expected the won run first", m.runs)
	}
}

func TestScoreboardCyclesGames(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	if len(m.games) < 2 {
		t.Fatalf("expected both stacker variants, got %d games", len(m.games))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after tab, expected 1", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(ScoreboardModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.cursor != len(m.games)-1 {
		t.Errorf("cursor = %d, expected wrap to %d", m.cursor, len(m.games)-1)
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("a board without a store should be empty")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should leave the scoreboard for the menu")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
	if next.(ScoreboardModel).View() != "" {
		t.Error("a closed scoreboard renders nothing")
	}
}
