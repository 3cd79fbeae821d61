package cardrive

import (
	"math"

	"github.com/vovakirdan/cardrive/internal/config"
)

// Progression tracks the distance driven in a run and the speed ramp.
type Progression struct {
	Distance float64 // Meters driven this run
	Speed    float64 // World units per tick
	TopSpeed float64 // Highest speed reached this run

	prevDistance float64
	cfg          config.ProgressionConfig
}

// NewProgression creates a progression at the initial speed.
func NewProgression(cfg config.ProgressionConfig) Progression {
	p := Progression{cfg: cfg}
	p.Reset()
	return p
}

// Tick adds the distance covered at the current speed.
func (p *Progression) Tick() {
	p.prevDistance = p.Distance
	p.Distance += p.Speed * p.cfg.DistancePerSpeed
}

// MaybeIncreaseSpeed raises the speed by one step when the distance reaches a
// milestone and the speed is below the cap. Reports whether it did.
func (p *Progression) MaybeIncreaseSpeed() bool {
	if !p.cfg.Enabled || p.Distance <= 0 || p.Speed >= p.cfg.MaxSpeed {
		return false
	}
	if !p.atMilestone() {
		return false
	}

	p.Speed = math.Min(p.Speed+p.cfg.SpeedStep, p.cfg.MaxSpeed)
	if p.Speed > p.TopSpeed {
		p.TopSpeed = p.Speed
	}
	return true
}

func (p *Progression) atMilestone() bool {
	switch p.cfg.Mode {
	case config.MilestoneCrossing:
		return math.Floor(p.Distance/p.cfg.Milestone) > math.Floor(p.prevDistance/p.cfg.Milestone)
	default:
		return math.Mod(p.Distance, p.cfg.Milestone) == 0
	}
}

// Reset clears the distance and restores the initial speed.
func (p *Progression) Reset() {
	p.Distance = 0
	p.prevDistance = 0
	p.Speed = p.cfg.InitialSpeed
	p.TopSpeed = p.cfg.InitialSpeed
}

// Meters returns the whole meters driven, as shown on the HUD.
func (p Progression) Meters() int {
	return int(math.Floor(p.Distance))
}
