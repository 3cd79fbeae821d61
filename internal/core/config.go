package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score   int  // Current score (whole meters driven this run)
	Playing bool // Whether a run is in progress
	Paused  bool // Whether the run is paused
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventRunStarted EventKind = iota
	EventRunEnded
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventRunStarted:
		return "RunStarted"
	case EventRunEnded:
		return "RunEnded"
	default:
		return "Unknown"
	}
}

// Event is emitted by Step when a run starts or ends.
type Event struct {
	Kind     EventKind
	Score    int     // Final score for EventRunEnded
	TopSpeed float64 // Highest speed reached during the run
	Ticks    uint64  // Ticks the run lasted
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has returns true if an event of the given kind occurred this tick.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
