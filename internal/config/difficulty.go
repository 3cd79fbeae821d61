package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// Description returns a one-line summary for menus and help text.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Speed rises half as fast"
	case DifficultyNormal:
		return "Speed rises every 500 m"
	case DifficultyHard:
		return "Speed rises twice as fast"
	case DifficultyFixed:
		return "Speed never changes"
	default:
		return ""
	}
}

// SpeedStepFactorForPreset returns the multiplier applied to the speed step.
func SpeedStepFactorForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 2.0
	default:
		return 1.0
	}
}

// ApplyCarDrivePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyCarDrivePreset(cfg *CarDriveConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Progression.Enabled = false
		return
	}
	cfg.Progression.Enabled = true
	cfg.Progression.SpeedStep *= SpeedStepFactorForPreset(preset)
}
