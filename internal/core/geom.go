// Package core provides fundamental types and utilities for the stacker platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box on the screen grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Span is a half-open run of grid columns [Start, Start+Width).
type Span struct {
	Start int
	Width int
}

// End returns the first column past the span.
func (s Span) End() int {
	return s.Start + s.Width
}

// Empty reports whether the span covers no columns.
func (s Span) Empty() bool {
	return s.Width <= 0
}

// Intersect returns the columns shared by both spans.
// Disjoint or touching spans yield a zero-width span anchored at the later start.
func (s Span) Intersect(other Span) Span {
	start := Max(s.Start, other.Start)
	width := Min(s.End(), other.End()) - start
	if width < 0 {
		width = 0
	}
	return Span{Start: start, Width: width}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
