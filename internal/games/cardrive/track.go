package cardrive

import "github.com/vovakirdan/cardrive/internal/config"

// Ground is the scrolling road slab. It is recycled like an obstacle with a
// single slot and a fixed reset position.
type Ground struct {
	Y float64
	Z float64
}

// Scroller moves the world toward the camera.
type Scroller struct {
	cfg config.GroundConfig
}

// NewScroller creates a scroller for the given ground settings.
func NewScroller(cfg config.GroundConfig) Scroller {
	return Scroller{cfg: cfg}
}

// Advance returns a replacement obstacle slice shifted by speed along z and
// moves the ground the same amount. A nil ground is skipped.
func (s Scroller) Advance(obstacles []Obstacle, ground *Ground, speed float64) []Obstacle {
	next := make([]Obstacle, len(obstacles))
	for i, o := range obstacles {
		o.Pos.Z += speed
		next[i] = o
	}

	if ground != nil {
		ground.Z += speed
		if ground.Z > 0 {
			ground.Z = s.cfg.ResetZ
		}
	}
	return next
}
