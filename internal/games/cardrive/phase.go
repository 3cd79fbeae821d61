package cardrive

// Phase is the run state of the game loop.
type Phase int

const (
	// PhaseNotStarted shows the idle scene and waits for the start key.
	PhaseNotStarted Phase = iota
	// PhasePlaying moves the world every tick.
	PhasePlaying
	// PhaseOver is entered on a crash. The run is reset in the same tick
	// and the loop returns to PhaseNotStarted.
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhasePlaying:
		return "Playing"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}
