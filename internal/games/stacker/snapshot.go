package stacker

// Snapshot captures a session for determinism testing and logging.
type Snapshot struct {
	Frame uint64
	Phase Phase
	Group BlockGroup
	Stack StackState
	Score int
}

// Snapshot returns the current session snapshot.
func (s *GameSession) Snapshot() Snapshot {
	return Snapshot{
		Frame: s.frames,
		Phase: s.phase,
		Group: s.group,
		Stack: s.resolver.State(),
		Score: s.score,
	}
}
