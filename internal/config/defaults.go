package config

import (
	_ "embed"
)

//go:embed defaults/cardrive.yaml
var defaultCarDriveYAML []byte

// DefaultCarDriveConfig returns the default Car Drive configuration.
func DefaultCarDriveConfig() CarDriveConfig {
	return CarDriveConfig{
		Obstacles: ObstacleConfig{
			Count:            5,
			Height:           0.5,
			Scale:            0.7,
			MinSeparation:    1.5,
			MaxAttempts:      10,
			RecycleThreshold: 5,
			SpawnX:           Range{Min: -4, Max: 4},
			SpawnZ:           Range{Min: -50, Max: -20},
			RecycleX:         Range{Min: -3, Max: 5},
			RecycleZ:         Range{Min: -55, Max: -25},
		},
		Player: PlayerConfig{
			StartY:          0,
			ResetY:          0.25,
			LateralStep:     0.1,
			XLimit:          4.5,
			CollisionRadius: 1.5,
		},
		Ground: GroundConfig{
			Y:      -3,
			StartZ: -50,
			ResetZ: -50,
		},
		Progression: ProgressionConfig{
			Enabled:          true,
			InitialSpeed:     0.1,
			MaxSpeed:         10.0,
			SpeedStep:        0.03,
			Milestone:        500,
			DistancePerSpeed: 10,
			Mode:             MilestoneExact,
		},
		Animation: AnimationConfig{
			Delta: 0.01,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "cardrive":
		return defaultCarDriveYAML
	default:
		return nil
	}
}
