package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// LocalPlayer is the player name recorded for runs played in a local terminal.
const LocalPlayer = "local"

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	player     string
	standalone bool // back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	recorded   bool   // whether the current run has been stored
	lastRunID  string // uuid of the most recently stored run
}

// NewModel creates a new Bubble Tea model for the given game. store and
// logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, player string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if player == "" {
		player = LocalPlayer
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		player:     player,
	}
}

// configReporter is implemented by games that fall back to defaults when
// their configuration cannot be loaded.
type configReporter interface {
	ConfigError() error
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if cr, ok := m.game.(configReporter); ok {
		if err := cr.ConfigError(); err != nil {
			m.logger.Warn("config unusable, playing with defaults", "game", m.game.ID(), "error", err)
		}
	}
	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed, "player", m.player)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The playfield has a fixed size; only the canvas follows the window
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused || m.gameState.Ticks == 0) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Record the run once per game over; a fresh run re-arms recording
	if m.gameState.GameOver {
		if !m.recorded {
			m.lastRunID = m.recordRun(m.gameState)
			m.recorded = true
		}
	} else {
		m.recorded = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores a finished run. Storage is best effort; failures are
// logged and play continues.
func (m *Model) recordRun(st core.GameState) string {
	outcome := OutcomeOf(st)
	logger := m.logger.With("game", m.game.ID(), "player", m.player)
	logger.Info("run finished", "outcome", outcome, "height", st.Height, "score", st.Score, "frames", st.Ticks)

	if m.store == nil {
		return ""
	}

	if st.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), st.Score); err != nil {
			logger.Warn("could not save score", "error", err)
		}
	}

	run, err := m.store.SaveRun(storage.RunRecord{
		GameID:  m.game.ID(),
		Outcome: outcome,
		Height:  st.Height,
		Score:   st.Score,
		Frames:  st.Ticks,
		Player:  m.player,
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return ""
	}
	logger.Debug("run stored", "run_id", run.RunID)
	return run.RunID
}

// OutcomeOf names the result of a finished run for storage.
func OutcomeOf(st core.GameState) string {
	if st.Won {
		return "won"
	}
	return "lost"
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".stacker", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the uuid of the last stored run, if any.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// Run starts the Bubble Tea program for a single game. Back and quit both
// leave the program. It returns the uuid of the last run stored during play.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (string, error) {
	model := NewModel(game, store, cfg, logger, LocalPlayer)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.LastRunID(), nil
	}
	return "", nil
}
