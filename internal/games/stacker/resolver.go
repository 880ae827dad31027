package stacker

import "github.com/vovakirdan/tui-stacker/internal/core"

// Outcome is the result of resolving one drop.
type Outcome int

const (
	OutcomeStacked  Outcome = iota // landed; play continues on the row above
	OutcomeGameOver                // nothing landed
	OutcomeWon                     // landed and reached the goal height
)

// String returns a lowercase name suitable for logs and storage.
func (o Outcome) String() string {
	switch o {
	case OutcomeStacked:
		return "stacked"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeWon:
		return "won"
	default:
		return "unknown"
	}
}

// StackState is the committed tower.
type StackState struct {
	LockedStart int // first tile column of the top locked row
	LockedWidth int // tiles in the top locked row
	Height      int // successful stacks
}

// Locked returns the top locked row as a span.
func (s StackState) Locked() core.Span {
	return core.Span{Start: s.LockedStart, Width: s.LockedWidth}
}

// Resolution describes what a drop did.
type Resolution struct {
	Outcome Outcome
	Landed  core.Span // new locked row; zero width on game over
	Trimmed int       // blocks cut off the group
	Row     int       // tile row the group was dropped on
	Patch   TilePatch // empty on game over
}

// Overlap intersects the current group [curStart, curStart+curWidth) with the
// locked row [lockStart, lockStart+lockWidth). The width is clamped to zero
// for disjoint ranges; a single shared column is a width of one.
func Overlap(curStart, curWidth, lockStart, lockWidth int) (start, width int) {
	s := core.Span{Start: curStart, Width: curWidth}.Intersect(core.Span{Start: lockStart, Width: lockWidth})
	return s.Start, s.Width
}

// Resolver is the stack resolver. It owns the StackState of one session.
type Resolver struct {
	state     StackState
	winHeight int
}

// NewResolver creates a resolver for a tower of winHeight rows.
func NewResolver(winHeight int) *Resolver {
	return &Resolver{winHeight: winHeight}
}

// State returns the committed tower.
func (r *Resolver) State() StackState {
	return r.state
}

// Resolve locks g onto the tower. The first drop of a session seeds the tower
// with the whole group. A drop that overlaps nothing (or reports an impossible
// width) is game over and leaves the state untouched.
func (r *Resolver) Resolve(g BlockGroup) Resolution {
	landed := g.Span()
	if r.state.Height > 0 {
		landed.Start, landed.Width = Overlap(g.TileX, g.Size, r.state.LockedStart, r.state.LockedWidth)
	}

	if landed.Width <= 0 || landed.Width > MaxGroupSize {
		return Resolution{
			Outcome: OutcomeGameOver,
			Landed:  core.Span{Start: landed.Start},
			Trimmed: g.Size,
			Row:     g.TileY,
		}
	}

	r.state.LockedStart = landed.Start
	r.state.LockedWidth = landed.Width
	r.state.Height++

	res := Resolution{
		Outcome: OutcomeStacked,
		Landed:  landed,
		Trimmed: g.Size - landed.Width,
		Row:     g.TileY,
		Patch:   solidifyPatch(landed, g.Size, g.TileY),
	}
	if r.state.Height >= r.winHeight {
		res.Outcome = OutcomeWon
	}
	return res
}
