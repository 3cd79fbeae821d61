package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCarDrive loads Car Drive configuration.
// Search order: customPath -> ~/.cardrive/configs/cardrive.yaml -> ./configs/cardrive.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may override a single key.
func LoadCarDrive(customPath string) (CarDriveConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCarDriveConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseCarDrive(data)
		if err != nil {
			return DefaultCarDriveConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("cardrive.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseCarDrive(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/cardrive.yaml"); err == nil {
		if cfg, err := parseCarDrive(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseCarDrive(GetDefaultYAML("cardrive"))
	if err != nil {
		return DefaultCarDriveConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCarDrive decodes YAML over the hardcoded defaults and validates the result.
func parseCarDrive(data []byte) (CarDriveConfig, error) {
	cfg := DefaultCarDriveConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings the simulation cannot run with.
func (c CarDriveConfig) Validate() error {
	var errs []error

	if c.Obstacles.Count < 0 {
		errs = append(errs, fmt.Errorf("obstacles.count must not be negative, got %d", c.Obstacles.Count))
	}
	if c.Obstacles.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("obstacles.max_attempts must be at least 1, got %d", c.Obstacles.MaxAttempts))
	}
	for name, r := range map[string]Range{
		"obstacles.spawn_x":   c.Obstacles.SpawnX,
		"obstacles.spawn_z":   c.Obstacles.SpawnZ,
		"obstacles.recycle_x": c.Obstacles.RecycleX,
		"obstacles.recycle_z": c.Obstacles.RecycleZ,
	} {
		if r.Max <= r.Min {
			errs = append(errs, fmt.Errorf("%s: max (%g) must be greater than min (%g)", name, r.Max, r.Min))
		}
	}
	if c.Player.XLimit <= 0 {
		errs = append(errs, fmt.Errorf("player.x_limit must be positive, got %g", c.Player.XLimit))
	}
	if c.Progression.InitialSpeed <= 0 || c.Progression.MaxSpeed < c.Progression.InitialSpeed {
		errs = append(errs, fmt.Errorf("progression: need 0 < initial_speed (%g) <= max_speed (%g)",
			c.Progression.InitialSpeed, c.Progression.MaxSpeed))
	}
	if c.Progression.Milestone <= 0 {
		errs = append(errs, fmt.Errorf("progression.milestone must be positive, got %g", c.Progression.Milestone))
	}
	switch c.Progression.Mode {
	case MilestoneExact, MilestoneCrossing:
	default:
		errs = append(errs, fmt.Errorf("progression.mode must be %q or %q, got %q",
			MilestoneExact, MilestoneCrossing, c.Progression.Mode))
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cardrive", "configs", filename)
}
