package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the stacker screens.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)
