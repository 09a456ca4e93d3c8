package game

import "log"

// OverlayState is the scene-level lifecycle state. Exactly one state is
// active at a time; Paused and PausedForUpgrade suspend the simulation,
// PausedForRelic only blocks the frame update, and GameOver is terminal.
type OverlayState int

const (
	StateRunning OverlayState = iota
	StatePaused
	StatePausedForUpgrade
	StatePausedForRelic
	StateGameOver
)

// String returns a readable state name for logging.
func (s OverlayState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StatePausedForUpgrade:
		return "PausedForUpgrade"
	case StatePausedForRelic:
		return "PausedForRelic"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Suspender is anything whose clock stops while the game is paused.
// The world (physics) and the timer lane both implement it.
type Suspender interface {
	Suspend()
	Resume()
}

// Session holds the mutable per-playthrough scene state. It is owned by
// the main scene and mutated only on its update tick or through the
// event callbacks the scene registers.
type Session struct {
	state      OverlayState
	suspenders []Suspender
	suspended  bool

	// Authoritative player/enemy overlap, written by the precise pass.
	overlapping bool

	// Diagnostic flag written by the broad collision pass. Never used
	// for damage decisions.
	broadOverlap bool

	kills int
}

// NewSession creates a session in the Running state. The given
// suspenders are suspended and resumed together as the state machine
// enters and leaves the paused states.
func NewSession(suspenders ...Suspender) *Session {
	return &Session{
		state:      StateRunning,
		suspenders: suspenders,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() OverlayState {
	return s.state
}

// IsPaused reports whether the simulation is suspended (pause menu or
// upgrade overlay open).
func (s *Session) IsPaused() bool {
	return s.state == StatePaused || s.state == StatePausedForUpgrade
}

// Suspended reports whether the suspenders are currently halted.
func (s *Session) Suspended() bool {
	return s.suspended
}

// Overlapping returns the authoritative player/enemy overlap value.
func (s *Session) Overlapping() bool {
	return s.overlapping
}

// SetOverlapping records the precise-pass overlap result.
func (s *Session) SetOverlapping(v bool) {
	s.overlapping = v
}

// BroadOverlap returns the diagnostic broad-pass flag.
func (s *Session) BroadOverlap() bool {
	return s.broadOverlap
}

// MarkBroadOverlap sets the diagnostic broad-pass flag for this frame.
func (s *Session) MarkBroadOverlap() {
	s.broadOverlap = true
}

// ClearBroadOverlap resets the diagnostic flag at the start of a frame.
func (s *Session) ClearBroadOverlap() {
	s.broadOverlap = false
}

// Kills returns the number of enemies defeated this playthrough.
func (s *Session) Kills() int {
	return s.kills
}

// AddKill increments the kill counter.
func (s *Session) AddKill() {
	s.kills++
}

// suspend halts all suspenders exactly once.
func (s *Session) suspend() {
	if s.suspended {
		return
	}
	s.suspended = true
	for _, sp := range s.suspenders {
		sp.Suspend()
	}
}

// resume restarts all suspenders exactly once.
func (s *Session) resume() {
	if !s.suspended {
		return
	}
	s.suspended = false
	for _, sp := range s.suspenders {
		sp.Resume()
	}
}

// Pause transitions Running -> Paused and suspends the simulation.
func (s *Session) Pause() bool {
	if s.state != StateRunning {
		log.Printf("[Session] pause rejected in state %s", s.state)
		return false
	}
	s.state = StatePaused
	s.suspend()
	return true
}

// Resume transitions Paused -> Running and resumes the simulation.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		log.Printf("[Session] resume rejected in state %s", s.state)
		return false
	}
	s.state = StateRunning
	s.resume()
	return true
}

// EnterUpgrade transitions Running -> PausedForUpgrade and suspends the
// simulation, identical to Pause except for which overlay is shown.
func (s *Session) EnterUpgrade() bool {
	if s.state != StateRunning {
		log.Printf("[Session] upgrade overlay rejected in state %s", s.state)
		return false
	}
	s.state = StatePausedForUpgrade
	s.suspend()
	return true
}

// ExitUpgrade transitions PausedForUpgrade -> Running.
func (s *Session) ExitUpgrade() bool {
	if s.state != StatePausedForUpgrade {
		log.Printf("[Session] upgrade close rejected in state %s", s.state)
		return false
	}
	s.state = StateRunning
	s.resume()
	return true
}

// EnterRelic transitions Running -> PausedForRelic. The relic overlay
// does not suspend the simulation clocks; the frame update is skipped
// outright while it is open.
func (s *Session) EnterRelic() bool {
	if s.state != StateRunning {
		log.Printf("[Session] relic overlay rejected in state %s", s.state)
		return false
	}
	s.state = StatePausedForRelic
	return true
}

// ExitRelic transitions PausedForRelic -> Running.
func (s *Session) ExitRelic() bool {
	if s.state != StatePausedForRelic {
		log.Printf("[Session] relic close rejected in state %s", s.state)
		return false
	}
	s.state = StateRunning
	return true
}

// GameOver moves to the terminal state from anywhere. Any outstanding
// suspension is lifted first so a paused clock never leaks into the next
// scene instance.
func (s *Session) GameOver() {
	if s.state == StateGameOver {
		return
	}
	s.resume()
	s.state = StateGameOver
}
