package stacker

// Phase is the externally visible state of a session. Resolving happens
// inside AdvanceFrame and is never observed between frames.
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseGameOver
	PhaseWon
)

// Terminal reports whether the session has ended.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWon
}

// String returns a lowercase name suitable for logs and storage.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "playing"
	case PhaseGameOver:
		return "lost"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Sprite asks the renderer to draw the moving group for one frame.
type Sprite struct {
	TileX, TileY int
	Count        int // zero hides the group
}

// FrameOutcome is everything one AdvanceFrame call produced.
type FrameOutcome struct {
	Frame      uint64
	Phase      Phase
	Resolved   bool       // a drop was resolved this frame
	Resolution Resolution // valid when Resolved
	Sprite     Sprite
}

// GameSession is one play-through, from the first group to a win or a loss.
type GameSession struct {
	params   Params
	motion   *Motion
	resolver *Resolver
	group    BlockGroup
	phase    Phase
	frames   uint64
	score    int
}

// NewSession starts a session with the first group centered on the base row.
func NewSession(p Params) *GameSession {
	var chooser DirectionChooser
	if p.Direction == DirectionRandom {
		chooser = NewRandomDirection(p.Seed)
	}

	s := &GameSession{
		params:   p,
		motion:   NewMotion(p, chooser),
		resolver: NewResolver(p.WinHeight),
	}
	s.group = s.motion.Spawn(p.InitialBlocks, p.BaseRow)
	return s
}

// AdvanceFrame runs one frame: move the group, then, if the drop button was
// pressed this frame, resolve the drop. Once the session has ended the call
// only reports the final state.
func (s *GameSession) AdvanceFrame(triggered bool) FrameOutcome {
	if s.phase.Terminal() {
		return FrameOutcome{Frame: s.frames, Phase: s.phase, Sprite: s.sprite()}
	}

	s.frames++
	s.motion.Step(&s.group)

	out := FrameOutcome{Frame: s.frames}
	if triggered {
		res := s.resolver.Resolve(s.group)
		out.Resolved = true
		out.Resolution = res

		switch res.Outcome {
		case OutcomeGameOver:
			s.phase = PhaseGameOver
		case OutcomeWon:
			s.score += res.Landed.Width
			s.phase = PhaseWon
		case OutcomeStacked:
			s.score += res.Landed.Width
			s.motion.Respawn(&s.group, res.Landed.Width)
		}
	}

	out.Phase = s.phase
	out.Sprite = s.sprite()
	return out
}

// sprite describes the group as drawn this frame. A won session has turned its
// last group into background, so nothing is left in flight.
func (s *GameSession) sprite() Sprite {
	if s.phase == PhaseWon {
		return Sprite{TileX: s.group.TileX, TileY: s.group.TileY}
	}
	return Sprite{TileX: s.group.TileX, TileY: s.group.TileY, Count: s.group.Size}
}

// Preview returns where the group will be after the next frame's movement.
func (s *GameSession) Preview() BlockGroup {
	g := s.group
	if !s.phase.Terminal() {
		s.motion.Step(&g)
	}
	return g
}

// Group returns the group in flight.
func (s *GameSession) Group() BlockGroup { return s.group }

// Stack returns the committed tower.
func (s *GameSession) Stack() StackState { return s.resolver.State() }

// Phase returns the session phase.
func (s *GameSession) Phase() Phase { return s.phase }

// Frames returns the number of frames simulated.
func (s *GameSession) Frames() uint64 { return s.frames }

// Score returns the sum of the widths of all landed rows.
func (s *GameSession) Score() int { return s.score }

// Params returns the rules the session was started with.
func (s *GameSession) Params() Params { return s.params }
