package stacker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) ApplyPatch(TilePatch) { r.calls = append(r.calls, "patch") }
func (r *recordingRenderer) DrawSprite(Sprite)    { r.calls = append(r.calls, "sprite") }

type neverPress struct{}

func (neverPress) Triggered() bool { return false }

type alwaysPress struct{}

func (alwaysPress) Triggered() bool { return true }

func TestRunSessionAutopilotWins(t *testing.T) {
	s := NewSession(DefaultParams())
	tiles := NewTileMap(s.Params().Columns(), s.Params().BaseRow+1)

	out, err := RunSession(context.Background(), s, &FreeRunTicks{Max: 100000}, NewAutopilot(s, 1, 0), tiles)
	require.NoError(t, err)
	assert.Equal(t, PhaseWon, out.Phase)
	assert.Equal(t, 10, s.Stack().Height)
	assert.Equal(t, 40, s.Score())
	assert.Equal(t, 10, tiles.Patches())

	for row := s.Params().GoalRow(); row <= s.Params().BaseRow; row++ {
		for col := 6; col < 10; col++ {
			assert.True(t, tiles.Filled(col, row), "cell %d,%d", col, row)
		}
	}
	assert.Equal(t, 10*4*4, tiles.Count())
	assert.Equal(t, 0, tiles.Sprite().Count)
}

func TestRunSessionFumblingAutopilotEnds(t *testing.T) {
	s := NewSession(DefaultParams())
	bot := NewAutopilot(s, 3, 1)

	out, err := RunSession(context.Background(), s, &FreeRunTicks{Max: 100000}, bot, NewTileMap(16, 14))
	require.NoError(t, err)
	assert.True(t, out.Phase.Terminal())
	assert.Greater(t, bot.Presses(), 1)
}

func TestRunSessionFrameLimit(t *testing.T) {
	s := NewSession(DefaultParams())

	out, err := RunSession(context.Background(), s, &FreeRunTicks{Max: 5}, neverPress{}, &recordingRenderer{})
	assert.ErrorIs(t, err, ErrFrameLimit)
	assert.Equal(t, uint64(5), out.Frame)
	assert.Equal(t, PhaseAwaitingInput, s.Phase())
}

func TestRunSessionCancelled(t *testing.T) {
	s := NewSession(DefaultParams())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunSession(ctx, s, &FreeRunTicks{}, neverPress{}, &recordingRenderer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), s.Frames())
}

func TestPresentOrdersPatchBeforeSprite(t *testing.T) {
	p := DefaultParams()
	p.WinHeight = 2
	s := NewSession(p)
	r := &recordingRenderer{}

	_, err := RunSession(context.Background(), s, &FreeRunTicks{Max: 10}, alwaysPress{}, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"patch", "sprite", "patch", "sprite"}, r.calls)
}

func TestTickerSourceHonorsContext(t *testing.T) {
	ts := NewTickerSource(1000)
	defer ts.Stop()

	require.NoError(t, ts.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ts.Wait(ctx), context.Canceled)
}
