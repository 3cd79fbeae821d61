package cardrive

import "github.com/vovakirdan/cardrive/internal/core"

// Snapshot captures the game state for determinism testing and spectators.
type Snapshot struct {
	Session   string      `json:"session,omitempty"` // Set by the platform; empty for a single local game
	Tick      uint64      `json:"tick"`
	Phase     string      `json:"phase"`
	Paused    bool        `json:"paused"`
	Distance  float64     `json:"distance"`
	Meters    int         `json:"meters"`
	Speed     float64     `json:"speed"`
	Player    *core.Vec3  `json:"player,omitempty"`
	GroundZ   *float64    `json:"groundZ,omitempty"`
	Obstacles []core.Vec3 `json:"obstacles"`
	Crashes   int         `json:"crashes"`
	LastRun   *RunSummary `json:"lastRun,omitempty"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Phase:     g.phase.String(),
		Paused:    g.paused,
		Distance:  g.world.Progression.Distance,
		Meters:    g.world.Progression.Meters(),
		Speed:     g.world.Progression.Speed,
		Obstacles: make([]core.Vec3, len(g.world.Obstacles)),
		Crashes:   g.crashes,
	}
	for i, o := range g.world.Obstacles {
		s.Obstacles[i] = o.Pos
	}
	if g.world.Player != nil {
		pos := g.world.Player.Pos
		s.Player = &pos
	}
	if g.world.Ground != nil {
		z := g.world.Ground.Z
		s.GroundZ = &z
	}
	if g.lastRun != nil {
		run := *g.lastRun
		s.LastRun = &run
	}
	return s
}
