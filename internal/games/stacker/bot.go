package stacker

import (
	"math/rand"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// Autopilot is an InputSource that plays a session. It presses when the group
// is about to line up with the locked row, and with probability FumbleRate per
// misaligned frame presses anyway.
type Autopilot struct {
	session    *GameSession
	rng        *rand.Rand
	fumbleRate float64
	edge       core.EdgeDetector
	presses    int
}

// NewAutopilot creates an autopilot for s.
func NewAutopilot(s *GameSession, seed int64, fumbleRate float64) *Autopilot {
	return &Autopilot{
		session:    s,
		rng:        rand.New(rand.NewSource(seed)),
		fumbleRate: fumbleRate,
	}
}

// Triggered reports whether to press on the coming frame. Holding alignment
// over several frames yields a single press.
func (a *Autopilot) Triggered() bool {
	if a.session.Phase().Terminal() {
		a.edge.Reset()
		return false
	}

	next := a.session.Preview()
	stack := a.session.Stack()
	aligned := stack.Height == 0 || next.TileX == stack.LockedStart

	fumble := !aligned && a.fumbleRate > 0 && a.rng.Float64() < a.fumbleRate
	pressed := a.edge.Update(aligned) || fumble
	if pressed {
		a.presses++
	}
	return pressed
}

// Presses returns how many presses the autopilot has made.
func (a *Autopilot) Presses() int {
	return a.presses
}
