package config

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned for a difficulty name that has no preset.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "keep the config as is".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// StartWaveForPreset returns the wave a preset starts at.
func StartWaveForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyHard:
		return 5
	default:
		return 1
	}
}

// ExtraLivesForPreset returns the lives a preset adds to the ship's starting lives.
func ExtraLivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 2
	case DifficultyHard:
		return -1
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables wave progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyMilkrunPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyMilkrunPreset(cfg *MilkrunConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)
	cfg.Difficulty.StartWave = StartWaveForPreset(preset)
	cfg.Difficulty.ExtraLives = ExtraLivesForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Powerups.ShieldMS *= 1.5
		cfg.Spawning.EnemyWarmupMS *= 2
	case DifficultyHard:
		cfg.Powerups.GoldenCows = 3
	}
}
