package stacker

import "github.com/vovakirdan/tui-stacker/internal/core"

// Tile is a background tile value. Every block cell is drawn as a 2x2 square
// of sub-tiles, so a patch addresses sub-tile coordinates: column c of row r
// covers x in {2c, 2c+1} and y in {2r, 2r+1}.
type Tile uint8

const (
	TileEmpty            Tile = 0x00
	TileBlockTopLeft     Tile = 0x40
	TileBlockTopRight    Tile = 0x41
	TileBlockBottomLeft  Tile = 0x42
	TileBlockBottomRight Tile = 0x43
)

// PatchCapacity is the most writes a single drop can produce: two anchor
// rows, each two sub-tiles per block of the widest group.
const PatchCapacity = 4 * MaxGroupSize

// Write is one background tile update in sub-tile coordinates.
type Write struct {
	X, Y uint8
	Tile Tile
}

// TilePatch is the ordered set of background writes produced by one drop.
// It is a plain value: the resolver fills it and hands a copy to the renderer.
type TilePatch struct {
	writes [PatchCapacity]Write
	n      int
}

// Len returns the number of writes.
func (p TilePatch) Len() int {
	return p.n
}

// Empty reports whether the patch carries no writes.
func (p TilePatch) Empty() bool {
	return p.n == 0
}

// At returns the i-th write.
func (p TilePatch) At(i int) Write {
	return p.writes[i]
}

// Writes returns the writes in order.
func (p TilePatch) Writes() []Write {
	out := make([]Write, p.n)
	copy(out, p.writes[:p.n])
	return out
}

func (p *TilePatch) add(x, y int, t Tile) {
	if p.n == PatchCapacity || x < 0 || y < 0 || x > 255 || y > 255 {
		return
	}
	p.writes[p.n] = Write{X: uint8(x), Y: uint8(y), Tile: t}
	p.n++
}

// solidifyPatch builds the writes that turn a landed group into background.
// Two runs are emitted, anchored at the top and bottom sub-tile rows of row,
// each covering span blocks from landed.Start. Blocks past landed.Width are
// written as empty so tiles trimmed from the previous, wider group never stay
// on screen.
func solidifyPatch(landed core.Span, span, row int) TilePatch {
	var p TilePatch
	anchors := [2]struct {
		y           int
		left, right Tile
	}{
		{y: 2 * row, left: TileBlockTopLeft, right: TileBlockTopRight},
		{y: 2*row + 1, left: TileBlockBottomLeft, right: TileBlockBottomRight},
	}

	for _, a := range anchors {
		for i := 0; i < span; i++ {
			x := 2 * (landed.Start + i)
			left, right := a.left, a.right
			if i >= landed.Width {
				left, right = TileEmpty, TileEmpty
			}
			p.add(x, a.y, left)
			p.add(x+1, a.y, right)
		}
	}
	return p
}
