// Package config provides YAML-based game configuration loading and
// difficulty presets for cardrive.
package config

// CarDriveConfig contains all configuration for the Car Drive game.
type CarDriveConfig struct {
	Obstacles   ObstacleConfig    `yaml:"obstacles"`
	Player      PlayerConfig      `yaml:"player"`
	Ground      GroundConfig      `yaml:"ground"`
	Progression ProgressionConfig `yaml:"progression"`
	Animation   AnimationConfig   `yaml:"animation"`
}

// Range is a half-open interval [Min, Max) sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span returns the width of the interval.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// ObstacleConfig defines the obstacle pool.
type ObstacleConfig struct {
	Count            int     `yaml:"count"`
	Height           float64 `yaml:"height"`            // World Y of every obstacle
	Scale            float64 `yaml:"scale"`             // Cube edge length in world units
	MinSeparation    float64 `yaml:"min_separation"`    // Spawn distance to other obstacles
	MaxAttempts      int     `yaml:"max_attempts"`      // Placement retries before accepting overlap
	RecycleThreshold float64 `yaml:"recycle_threshold"` // Z past which an obstacle is recycled
	SpawnX           Range   `yaml:"spawn_x"`
	SpawnZ           Range   `yaml:"spawn_z"`
	RecycleX         Range   `yaml:"recycle_x"`
	RecycleZ         Range   `yaml:"recycle_z"`
}

// PlayerConfig defines the truck.
type PlayerConfig struct {
	StartY          float64 `yaml:"start_y"`
	ResetY          float64 `yaml:"reset_y"`
	LateralStep     float64 `yaml:"lateral_step"`     // X change per tick while steering
	XLimit          float64 `yaml:"x_limit"`          // X is clamped to [-XLimit, XLimit]
	CollisionRadius float64 `yaml:"collision_radius"` // Crash when closer than this to an obstacle
}

// GroundConfig defines the scrolling ground slab.
type GroundConfig struct {
	Y      float64 `yaml:"y"`
	StartZ float64 `yaml:"start_z"`
	ResetZ float64 `yaml:"reset_z"` // Z restored once the ground passes 0
}

// MilestoneMode selects how distance milestones trigger a speed increase.
type MilestoneMode string

const (
	// MilestoneExact fires only when the distance is an exact multiple of the
	// milestone. With a speed that does not divide the milestone evenly the
	// accumulator can skip every multiple and the speed never rises again.
	MilestoneExact MilestoneMode = "exact"

	// MilestoneCrossing fires whenever the distance crosses a multiple of the milestone.
	MilestoneCrossing MilestoneMode = "crossing"
)

// ProgressionConfig defines distance accumulation and the speed ramp.
type ProgressionConfig struct {
	Enabled          bool          `yaml:"enabled"`
	InitialSpeed     float64       `yaml:"initial_speed"`
	MaxSpeed         float64       `yaml:"max_speed"`
	SpeedStep        float64       `yaml:"speed_step"`
	Milestone        float64       `yaml:"milestone"`          // Distance between speed increases
	DistancePerSpeed float64       `yaml:"distance_per_speed"` // Meters added per unit of speed each tick
	Mode             MilestoneMode `yaml:"mode"`
}

// AnimationConfig defines sprite animation timing.
type AnimationConfig struct {
	Delta float64 `yaml:"delta"` // Clip time advanced per playing tick
}
