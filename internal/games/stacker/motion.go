package stacker

import (
	"math/rand"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// BlockGroup is the run of blocks currently in flight.
type BlockGroup struct {
	Position    Fixed // left edge in pixels
	TileX       int   // derived from Position
	TileY       int   // row, decreasing as the tower grows
	Size        int   // blocks in the group
	Speed       Fixed // per frame
	MovingRight bool
}

// Span returns the tile columns the group covers.
func (g BlockGroup) Span() core.Span {
	return core.Span{Start: g.TileX, Width: g.Size}
}

// DirectionChooser picks the direction of a newly spawned group.
type DirectionChooser interface {
	MovingRight() bool
}

type randomDirection struct {
	rng *rand.Rand
}

// NewRandomDirection returns a uniform, seeded direction chooser.
func NewRandomDirection(seed int64) DirectionChooser {
	return &randomDirection{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomDirection) MovingRight() bool {
	return r.rng.Intn(2) == 1
}

// Motion is the block motion controller. It owns no state of its own; every
// call mutates the BlockGroup it is handed.
type Motion struct {
	p       Params
	chooser DirectionChooser // nil keeps the current direction on respawn
}

// NewMotion creates a motion controller. A nil chooser selects the bounce policy.
func NewMotion(p Params, chooser DirectionChooser) *Motion {
	return &Motion{p: p, chooser: chooser}
}

// TileFor converts a fixed-point position to a tile column: truncate, then
// round up when at least half a block of pixels remains.
func (m *Motion) TileFor(pos Fixed) int {
	px := pos.Int()
	tile := px / m.p.BlockSize
	if px%m.p.BlockSize >= m.p.BlockSize/2 {
		tile++
	}
	return tile
}

// bounds returns the leftmost and rightmost legal positions for a group of
// the given size. The right bound keeps the trailing edge inside the margin.
func (m *Motion) bounds(size int) (lo, hi Fixed) {
	lo = FromInt(m.p.Margin)
	hi = FromInt(m.p.PlayfieldWidth - m.p.Margin - size*m.p.BlockSize)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Spawn creates the first group of a session, centered on row.
func (m *Motion) Spawn(size, row int) BlockGroup {
	g := BlockGroup{
		TileY:       row,
		Size:        size,
		Speed:       m.p.InitialSpeed,
		MovingRight: true,
	}
	if m.chooser != nil {
		g.MovingRight = m.chooser.MovingRight()
	}
	m.center(&g)
	return g
}

// center places the middle of the group on CenterX.
func (m *Motion) center(g *BlockGroup) {
	lo, hi := m.bounds(g.Size)
	g.Position = clampFixed(FromInt(m.p.CenterX-g.Size*m.p.BlockSize/2), lo, hi)
	g.TileX = m.TileFor(g.Position)
}

// Step advances the group by one frame. Reaching a bound clamps the position
// to it and reverses the direction; a group already moving away from a bound
// never flips.
func (m *Motion) Step(g *BlockGroup) {
	lo, hi := m.bounds(g.Size)
	if g.MovingRight {
		g.Position += g.Speed
		if g.Position >= hi {
			g.Position = hi
			g.MovingRight = false
		}
	} else {
		g.Position -= g.Speed
		if g.Position <= lo {
			g.Position = lo
			g.MovingRight = true
		}
	}
	g.TileX = m.TileFor(g.Position)
}

// Respawn moves the group to the row above after a successful stack.
func (m *Motion) Respawn(g *BlockGroup, size int) {
	g.Size = size
	g.TileY--
	g.Speed += m.p.SpeedIncrement
	if m.chooser != nil {
		g.MovingRight = m.chooser.MovingRight()
	}
	m.center(g)
}
