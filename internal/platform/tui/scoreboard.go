package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

const maxRuns = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardWonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// boardKeys are the scoreboard bindings. Scrolling is left to the table.
type boardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best runs of one game at a time.
type ScoreboardModel struct {
	games     []registry.GameInfo
	cursor    int
	store     *storage.Store
	runs      []storage.RunRecord
	stats     storage.RunStats
	high      int
	table     table.Model
	help      help.Model
	keys      boardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered game.
// store may be nil, in which case every board is empty.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	if len(m.games) > 0 {
		m.load()
	}
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Height", Width: 7},
		{Title: "Result", Width: 7},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-11, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// load reads the selected game's runs, statistics and high score.
func (m *ScoreboardModel) load() {
	gameID := m.games[m.cursor].ID
	m.runs = nil
	m.stats = storage.RunStats{GameID: gameID}
	m.high = 0

	if m.store != nil {
		if runs, err := m.store.TopRuns(gameID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.RunStats(gameID); err == nil {
			m.stats = stats
		}
		if high, err := m.store.HighScore(gameID); err == nil {
			m.high = high
		}
	}
	m.table.SetRows(runRows(m.runs))
	m.table.GotoTop()
}

// runRows formats runs as table rows.
func runRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Height),
			r.Outcome,
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycle moves the game cursor by delta, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.load()
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render(m.title()), m.width))
	b.WriteString("\n\n")

	if len(m.games) > 1 {
		switcher := fmt.Sprintf("◀ %s ▶  (%d/%d)", m.games[m.cursor].Title, m.cursor+1, len(m.games))
		b.WriteString(centerText(boardDimStyle.Render(switcher), m.width))
		b.WriteString("\n")
	}

	body := m.table.View()
	if len(m.runs) == 0 {
		body = boardDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nStack some blocks to get on the board!")
	}
	b.WriteString(centerText(boardFrameStyle.Render(body), m.width))
	b.WriteString("\n")

	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// title names the board and, once a score exists, the high score to beat.
func (m ScoreboardModel) title() string {
	if len(m.games) == 0 {
		return "BEST RUNS"
	}
	name := strings.ToUpper(m.games[m.cursor].Title)
	if m.high > 0 {
		return fmt.Sprintf("BEST RUNS - %s - HI %d", name, m.high)
	}
	return "BEST RUNS - " + name
}

// statsLine summarizes the selected game's runs.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st.Played == 0 {
		return ""
	}
	line := fmt.Sprintf("played %d  won %d  lost %d  win rate %.0f%%  best height %d",
		st.Played, st.Won, st.Lost, st.WinRate()*100, st.BestHeight)
	if st.Won > 0 {
		return boardWonStyle.Render(line)
	}
	return boardDimStyle.Render(line)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program and reports whether
// the user went back (true) or quit (false).
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
