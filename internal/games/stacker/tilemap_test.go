package stacker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
)

func TestTileMapApplyPatch(t *testing.T) {
	m := NewTileMap(16, 14)

	m.ApplyPatch(solidifyPatch(core.Span{Start: 6, Width: 4}, 4, 13))
	for col := 6; col < 10; col++ {
		assert.True(t, m.Filled(col, 13), "col %d", col)
	}
	assert.False(t, m.Filled(5, 13))
	assert.Equal(t, 16, m.Count())
	assert.Equal(t, TileBlockTopLeft, m.TileAt(12, 26))
	assert.Equal(t, TileBlockBottomRight, m.TileAt(19, 27))

	// A trimmed drop clears the sub-tiles it no longer covers
	m.ApplyPatch(solidifyPatch(core.Span{Start: 8, Width: 2}, 4, 12))
	assert.True(t, m.Filled(8, 12))
	assert.True(t, m.Filled(9, 12))
	assert.False(t, m.Filled(10, 12))
	assert.Equal(t, TileEmpty, m.TileAt(20, 24))
	assert.Equal(t, 24, m.Count())
	assert.Equal(t, 2, m.Patches())
}

func TestTileMapDropsOutOfBoundsWrites(t *testing.T) {
	m := NewTileMap(2, 1)

	m.ApplyPatch(solidifyPatch(core.Span{Start: 1, Width: 2}, 2, 0))
	assert.True(t, m.Filled(1, 0))
	assert.False(t, m.Filled(2, 0))
	assert.Equal(t, 4, m.Count())
	assert.Equal(t, TileEmpty, m.TileAt(-1, 0))
	assert.Equal(t, TileEmpty, m.TileAt(4, 0))
}

func TestTileMapClear(t *testing.T) {
	m := NewTileMap(16, 14)
	m.ApplyPatch(solidifyPatch(core.Span{Start: 0, Width: 3}, 3, 0))
	m.DrawSprite(Sprite{TileX: 3, TileY: 4, Count: 2})
	assert.Equal(t, Sprite{TileX: 3, TileY: 4, Count: 2}, m.Sprite())

	m.Clear()
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, 0, m.Patches())
	assert.Equal(t, Sprite{}, m.Sprite())
}

func TestTileMapWidestPlayfield(t *testing.T) {
	cfg := config.DefaultStackerConfig()
	cfg.Playfield.Width = config.MaxColumns * cfg.Playfield.BlockSize
	require.NoError(t, cfg.Validate())

	cols := cfg.Columns()
	m := NewTileMap(cols, cfg.Playfield.BaseRow+1)
	r := NewResolver(cfg.Goal.WinHeight)

	res := r.Resolve(group(cols-4, 4, cfg.Playfield.BaseRow))
	require.Equal(t, OutcomeStacked, res.Outcome)
	assert.Equal(t, 16, res.Patch.Len())

	m.ApplyPatch(res.Patch)
	for col := cols - 4; col < cols; col++ {
		assert.True(t, m.Filled(col, cfg.Playfield.BaseRow), "col %d", col)
	}

	// Distinct corners of the map must not share an address
	m.ApplyPatch(solidifyPatch(core.Span{Start: 0, Width: 1}, 1, 0))
	assert.True(t, m.Filled(0, 0))
	assert.True(t, m.Filled(cols-1, cfg.Playfield.BaseRow))
	assert.Equal(t, 20, m.Count())
}
