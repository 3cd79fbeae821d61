package cardrive

import (
	"math/rand"

	"github.com/vovakirdan/cardrive/internal/config"
	"github.com/vovakirdan/cardrive/internal/core"
)

// Obstacle is a cube the truck must avoid. Obstacles are never removed,
// only repositioned once they pass the camera.
type Obstacle struct {
	Pos core.Vec3
}

// ObstaclePool places and recycles obstacles.
// It is the only producer of obstacle positions.
type ObstaclePool struct {
	rng *rand.Rand
	cfg config.ObstacleConfig

	// Placements accepted after running out of attempts since the last reseed.
	exhausted int
}

// NewObstaclePool creates a pool drawing positions from rng.
func NewObstaclePool(rng *rand.Rand, cfg config.ObstacleConfig) *ObstaclePool {
	return &ObstaclePool{rng: rng, cfg: cfg}
}

// SpawnInitial creates n obstacles at random spawn positions, each kept at
// least MinSeparation away from the ones placed before it when possible.
func (p *ObstaclePool) SpawnInitial(n int) []Obstacle {
	obstacles := make([]Obstacle, 0, n)
	for i := 0; i < n; i++ {
		pos, _ := p.PlaceRandom(obstacles)
		obstacles = append(obstacles, Obstacle{Pos: pos})
	}
	return obstacles
}

// PlaceRandom samples a spawn position that does not overlap existing.
// After MaxAttempts failed samples the last candidate is returned anyway
// and exhausted is true.
func (p *ObstaclePool) PlaceRandom(existing []Obstacle) (pos core.Vec3, exhausted bool) {
	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		pos = core.V3(
			p.sample(p.cfg.SpawnX),
			p.cfg.Height,
			p.sample(p.cfg.SpawnZ),
		)
		if !p.overlaps(pos, existing) {
			return pos, false
		}
	}
	p.exhausted++
	return pos, true
}

func (p *ObstaclePool) overlaps(pos core.Vec3, existing []Obstacle) bool {
	for _, o := range existing {
		if pos.DistanceTo(o.Pos) < p.cfg.MinSeparation {
			return true
		}
	}
	return false
}

// Recycle moves an obstacle back into the distance.
// The recycle x-range is offset from the spawn x-range.
func (p *ObstaclePool) Recycle(o Obstacle) Obstacle {
	o.Pos.Z = p.sample(p.cfg.RecycleZ)
	o.Pos.X = p.sample(p.cfg.RecycleX)
	return o
}

// RecyclePassed returns a replacement slice in which every obstacle past the
// recycle threshold has been recycled, and the number recycled.
func (p *ObstaclePool) RecyclePassed(obstacles []Obstacle) ([]Obstacle, int) {
	next := make([]Obstacle, len(obstacles))
	recycled := 0
	for i := range obstacles {
		next[i] = obstacles[i]
		if next[i].Pos.Z > p.cfg.RecycleThreshold {
			next[i] = p.Recycle(next[i])
			recycled++
		}
	}
	return next, recycled
}

// Respawn repositions every obstacle as if spawned fresh, keeping the count.
func (p *ObstaclePool) Respawn(obstacles []Obstacle) []Obstacle {
	return p.SpawnInitial(len(obstacles))
}

// Exhausted returns how many placements gave up on finding a free spot.
func (p *ObstaclePool) Exhausted() int {
	return p.exhausted
}

// sample draws uniformly from [r.Min, r.Max).
func (p *ObstaclePool) sample(r config.Range) float64 {
	return r.Min + p.rng.Float64()*r.Span()
}
