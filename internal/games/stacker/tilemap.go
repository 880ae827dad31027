package stacker

import (
	"github.com/kamstrup/intmap"
)

// TileMap is an in-memory background: the renderer collaborator that turns
// patches into addressed tile storage. Only non-empty tiles are stored.
type TileMap struct {
	width, height int // in sub-tiles
	tiles         *intmap.Map[uint16, Tile]
	sprite        Sprite
	patches       int
}

// NewTileMap creates a background for a playfield of columns x rows blocks.
func NewTileMap(columns, rows int) *TileMap {
	return &TileMap{
		width:  2 * columns,
		height: 2 * rows,
		tiles:  intmap.New[uint16, Tile](4 * columns),
	}
}

// address maps a sub-tile coordinate to its storage key, row-major like a
// nametable.
func (m *TileMap) address(x, y int) (uint16, bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, false
	}
	return uint16(y*m.width + x), true
}

// ApplyPatch writes every in-bounds tile of p. Writes past the playfield edge
// are dropped.
func (m *TileMap) ApplyPatch(p TilePatch) {
	for i := 0; i < p.Len(); i++ {
		w := p.At(i)
		addr, ok := m.address(int(w.X), int(w.Y))
		if !ok {
			continue
		}
		if w.Tile == TileEmpty {
			m.tiles.Del(addr)
		} else {
			m.tiles.Put(addr, w.Tile)
		}
	}
	m.patches++
}

// DrawSprite records the group to draw on top of the background.
func (m *TileMap) DrawSprite(s Sprite) {
	m.sprite = s
}

// Sprite returns the last sprite drawn.
func (m *TileMap) Sprite() Sprite {
	return m.sprite
}

// TileAt returns the tile at a sub-tile coordinate.
func (m *TileMap) TileAt(x, y int) Tile {
	addr, ok := m.address(x, y)
	if !ok {
		return TileEmpty
	}
	t, _ := m.tiles.Get(addr)
	return t
}

// Filled reports whether the block cell (col, row) is fully solid.
func (m *TileMap) Filled(col, row int) bool {
	return m.TileAt(2*col, 2*row) == TileBlockTopLeft &&
		m.TileAt(2*col+1, 2*row) == TileBlockTopRight &&
		m.TileAt(2*col, 2*row+1) == TileBlockBottomLeft &&
		m.TileAt(2*col+1, 2*row+1) == TileBlockBottomRight
}

// Count returns the number of non-empty tiles.
func (m *TileMap) Count() int {
	return m.tiles.Len()
}

// Patches returns how many patches have been applied.
func (m *TileMap) Patches() int {
	return m.patches
}

// Clear empties the background and hides the sprite.
func (m *TileMap) Clear() {
	m.tiles.Clear()
	m.sprite = Sprite{}
	m.patches = 0
}
