package stacker

import (
	"fmt"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
)

// Registered game IDs.
const (
	GameID     = "stacker"
	WildGameID = "stacker_wild"
)

// Terminal layout: a block cell is 4 characters wide and one row tall, the
// top and bottom sub-tile rows being folded into half-block glyphs.
const (
	cellChars   = 4
	goalLabel   = " ◀ GOAL"
	resultDelay = 30 // frames before the result screen accepts input
	blinkBit    = 8  // result colors swap when this frame bit flips
)

// Visual characters for rendering
const (
	FullChar   = '█'
	TopChar    = '▀'
	BottomChar = '▄'
	MarginChar = '░'
)

type screenKind int

const (
	screenTitle screenKind = iota
	screenPlaying
	screenResult
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts a GameSession to the platform: a title screen, the session
// itself, and a result screen, looping forever.
type Game struct {
	id        string
	title     string
	direction *DirectionPolicy // forces a policy regardless of config
	runtime   core.RuntimeConfig
	cfg       config.StackerConfig
	params    Params
	session   *GameSession
	tiles     *TileMap
	screen    screenKind
	paused    bool
	frame     int // frames since the current screen was entered
	runs      int // sessions started since Reset
	cfgErr    error
}

// New creates the classic game: direction only changes at the edges.
func New() *Game {
	return &Game{id: GameID, title: "Stacker"}
}

// NewWild creates the variant whose groups start in a random direction.
func NewWild() *Game {
	random := DirectionRandom
	return &Game{id: WildGameID, title: "Stacker Wild", direction: &random}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and returns to the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadStacker(configPath)
	if err != nil {
		cfg = config.DefaultStackerConfig()
	}
	g.cfgErr = err

	if difficultyPreset != "" {
		config.ApplyStackerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.params = ParamsFromConfig(cfg, runtime.Seed)
	if g.direction != nil {
		g.params.Direction = *g.direction
	}

	g.tiles = NewTileMap(g.params.Columns(), g.params.BaseRow+1)
	g.session = nil
	g.screen = screenTitle
	g.paused = false
	g.frame = 0
	g.runs = 0
}

// startSession begins a fresh play-through with its own seed.
func (g *Game) startSession() {
	p := g.params
	p.Seed = g.runtime.Seed + int64(g.runs)
	g.runs++

	g.session = NewSession(p)
	g.tiles.Clear()
	g.tiles.DrawSprite(g.session.sprite())
	g.screen = screenPlaying
	g.paused = false
	g.frame = 0
}

// Step advances the current screen by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++

	switch g.screen {
	case screenTitle:
		if in.Has(core.ActionDrop) || in.Has(core.ActionConfirm) {
			g.startSession()
		}

	case screenPlaying:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if g.paused {
			break
		}
		out := g.session.AdvanceFrame(in.Has(core.ActionDrop))
		present(out, g.tiles)
		if out.Phase.Terminal() {
			g.screen = screenResult
			g.frame = 0
		}

	case screenResult:
		if in.Has(core.ActionRestart) {
			g.startSession()
			break
		}
		if g.frame > resultDelay && (in.Has(core.ActionDrop) || in.Has(core.ActionConfirm)) {
			g.screen = screenTitle
			g.frame = 0
		}
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state. The run counts as over for as long
// as the result screen is shown.
func (g *Game) State() core.GameState {
	st := core.GameState{Paused: g.paused}
	if g.session == nil {
		return st
	}
	st.Score = g.session.Score()
	st.Height = g.session.Stack().Height
	st.Ticks = int(g.session.Frames())
	if g.screen == screenResult {
		st.GameOver = true
		st.Won = g.session.Phase() == PhaseWon
	}
	return st
}

// ConfigError returns the error hit while loading the configuration, if the
// game fell back to defaults.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Session returns the current session, or nil on the title screen before the first run.
func (g *Game) Session() *GameSession {
	return g.session
}

// layout returns the size of the playfield drawing, border included.
func (g *Game) layout() (boxW, boxH, totalW, totalH int) {
	boxW = g.params.Columns()*cellChars + 2
	boxH = g.params.BaseRow + 1 + 2
	totalW = boxW + len([]rune(goalLabel))
	totalH = boxH + 1 // HUD line
	return
}

// Render draws the current screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	_, _, totalW, totalH := g.layout()
	if dst.Width() < totalW || dst.Height() < totalH {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", totalW, totalH), core.ColorGray)
		return
	}

	switch g.screen {
	case screenTitle:
		g.renderTitle(dst)
	case screenPlaying:
		g.renderPlayfield(dst)
		if g.paused {
			g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
		}
	case screenResult:
		g.renderPlayfield(dst)
		g.renderResult(dst)
	}
}

func (g *Game) renderTitle(dst *core.Screen) {
	cy := dst.Height()/2 - 5

	// A small tower, narrowing toward the top
	widths := []int{2, 3, 3, 4, 4}
	for i, w := range widths {
		y := cy + i
		x := (dst.Width() - w*cellChars) / 2
		color := core.ColorCyan
		if i == 0 {
			color = core.ColorBrightCyan
		}
		dst.DrawHLine(x, y, w*cellChars, FullChar, color)
	}

	dst.DrawTextCentered(cy+len(widths)+1, "S T A C K E R", core.ColorBrightYellow)
	dst.DrawTextCentered(cy+len(widths)+3,
		fmt.Sprintf("Stack %d rows to win. Overhang is trimmed.", g.params.WinHeight), core.ColorDefault)
	dst.DrawTextCentered(cy+len(widths)+5, "SPACE drop   P pause   Q quit", core.ColorGray)

	// Blink the prompt like the cartridge attract screen
	if (g.frame/30)%2 == 0 {
		dst.DrawTextCentered(cy+len(widths)+7, "Press SPACE to start", core.ColorWhite)
	}
	if g.cfgErr != nil {
		dst.DrawTextCentered(dst.Height()-1, "config error, using defaults", core.ColorRed)
	}
}

// palette returns the colors for locked tiles, the moving group and the goal
// marker. The result screen recolors them the way the cartridge swapped
// palettes: red on a loss, alternating on a win.
func (g *Game) palette() (locked, moving, goal core.Color) {
	locked, moving, goal = core.ColorCyan, core.ColorBrightCyan, core.ColorYellow
	if g.screen != screenResult || g.session == nil {
		return
	}
	if g.session.Phase() == PhaseGameOver {
		return core.ColorRed, core.ColorBrightRed, core.ColorGray
	}
	if g.frame&blinkBit != 0 {
		return core.ColorBlue, core.ColorBlue, core.ColorBrightRed
	}
	return core.ColorBrightYellow, core.ColorBrightYellow, core.ColorOrange
}

func (g *Game) renderPlayfield(dst *core.Screen) {
	boxW, boxH, totalW, totalH := g.layout()
	ox := (dst.Width() - totalW) / 2
	oy := (dst.Height()-totalH)/2 + 1
	locked, moving, goal := g.palette()

	g.renderHUD(dst, ox, oy-1, boxW)
	dst.DrawBox(core.NewRect(ox, oy, boxW, boxH), core.ColorGray)

	cols := g.params.Columns()
	for row := 0; row <= g.params.BaseRow; row++ {
		y := oy + 1 + row
		for col := 0; col < cols; col++ {
			x := ox + 1 + col*cellChars
			if g.inMargin(col) {
				dst.DrawHLine(x, y, cellChars, MarginChar, core.ColorGray)
				continue
			}
			for half := 0; half < 2; half++ {
				sx := 2*col + half
				top := g.tiles.TileAt(sx, 2*row) != TileEmpty
				bottom := g.tiles.TileAt(sx, 2*row+1) != TileEmpty
				var ch rune
				switch {
				case top && bottom:
					ch = FullChar
				case top:
					ch = TopChar
				case bottom:
					ch = BottomChar
				default:
					continue
				}
				dst.DrawHLine(x+half*cellChars/2, y, cellChars/2, ch, locked)
			}
		}
	}

	sp := g.tiles.Sprite()
	for i := 0; i < sp.Count; i++ {
		dst.DrawHLine(ox+1+(sp.TileX+i)*cellChars, oy+1+sp.TileY, cellChars, FullChar, moving)
	}

	if gr := g.params.GoalRow(); gr >= 0 {
		dst.DrawTextColored(ox+boxW, oy+1+gr, goalLabel, goal)
	}
}

// inMargin reports whether a column lies in the bounce margin.
func (g *Game) inMargin(col int) bool {
	left := col * g.params.BlockSize
	return left < g.params.Margin || left+g.params.BlockSize > g.params.PlayfieldWidth-g.params.Margin
}

func (g *Game) renderHUD(dst *core.Screen, x, y, w int) {
	height, score, speed := 0, 0, g.params.InitialSpeed
	if g.session != nil {
		height = g.session.Stack().Height
		score = g.session.Score()
		speed = g.session.Group().Speed
	}
	left := fmt.Sprintf(" %s  Height %d/%d", g.title, height, g.params.WinHeight)
	right := fmt.Sprintf("Score %d  Speed %.2f ", score, float64(speed)/float64(1<<FPBits))
	dst.DrawTextColored(x, y, left, core.ColorBrightYellow)
	dst.DrawTextColored(x+w-len(right), y, right, core.ColorDefault)
}

func (g *Game) renderResult(dst *core.Screen) {
	st := g.State()
	sub := fmt.Sprintf("Height %d/%d  Score %d", st.Height, g.params.WinHeight, st.Score)
	if st.Won {
		g.drawCenteredMessage(dst, "YOU WIN!", sub, core.ColorBrightYellow)
	} else {
		g.drawCenteredMessage(dst, "GAME OVER", sub, core.ColorBrightRed)
	}
	if g.frame > resultDelay {
		dst.DrawTextCentered(dst.Height()-1, "SPACE title   R retry   Q quit", core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), c)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, c)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// Register the game variants with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(WildGameID, func() registry.Game {
		return NewWild()
	})
}
