package stacker

import (
	"context"
	"errors"
	"time"
)

// ErrFrameLimit is returned by RunSession when a bounded tick source runs out
// before the session ends.
var ErrFrameLimit = errors.New("stacker: frame limit reached")

// TickSource blocks until the next frame may run.
type TickSource interface {
	Wait(ctx context.Context) error
}

// InputSource reports the edge-triggered drop button.
type InputSource interface {
	Triggered() bool
}

// Renderer receives the visible effect of every frame: at most one patch,
// then the sprite for the group in flight.
type Renderer interface {
	ApplyPatch(p TilePatch)
	DrawSprite(s Sprite)
}

// RunSession drives s until it ends, one AdvanceFrame per tick, and returns
// the final frame. It stops early with the tick source's error or when ctx is
// cancelled.
func RunSession(ctx context.Context, s *GameSession, ticks TickSource, in InputSource, r Renderer) (FrameOutcome, error) {
	var out FrameOutcome
	for {
		if err := ticks.Wait(ctx); err != nil {
			return out, err
		}
		out = s.AdvanceFrame(in.Triggered())
		present(out, r)
		if out.Phase.Terminal() {
			return out, nil
		}
	}
}

// present hands one frame to the renderer, patch first so the sprite is drawn
// over the updated background.
func present(out FrameOutcome, r Renderer) {
	if out.Resolved && !out.Resolution.Patch.Empty() {
		r.ApplyPatch(out.Resolution.Patch)
	}
	r.DrawSprite(out.Sprite)
}

// TickerSource paces frames at a fixed rate.
type TickerSource struct {
	ticker *time.Ticker
}

// NewTickerSource creates a source firing rate times per second.
func NewTickerSource(rate int) *TickerSource {
	if rate <= 0 {
		rate = 60
	}
	return &TickerSource{ticker: time.NewTicker(time.Second / time.Duration(rate))}
}

// Wait blocks until the next tick or cancellation.
func (t *TickerSource) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

// Stop releases the ticker.
func (t *TickerSource) Stop() {
	t.ticker.Stop()
}

// FreeRunTicks never blocks; it is used for simulation. A non-zero Max bounds
// the number of frames.
type FreeRunTicks struct {
	Max uint64
	n   uint64
}

// Wait returns immediately unless ctx is done or Max frames have run.
func (f *FreeRunTicks) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Max > 0 && f.n >= f.Max {
		return ErrFrameLimit
	}
	f.n++
	return nil
}
