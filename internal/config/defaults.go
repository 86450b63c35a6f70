package config

import (
	_ "embed"

	"github.com/vovakirdan/milkrun/internal/runstate"
)

//go:embed defaults/milkrun.yaml
var defaultMilkrunYAML []byte

// DefaultShipID is the ship every new pilot owns.
const DefaultShipID = "ufo"

// DefaultMilkrunConfig returns the built-in configuration.
// Used when the embedded YAML cannot be parsed.
func DefaultMilkrunConfig() MilkrunConfig {
	return MilkrunConfig{
		Field: FieldConfig{
			Width:  360,
			Height: 640,
			Margin: 25,
		},
		Player: PlayerConfig{
			MaxLives:           5,
			InvincibleMS:       1500,
			ReviveInvincibleMS: 3000,
			TouchDeadband:      5,
			TouchFollow:        0.15,
			JoystickDeadzone:   0.1,
			StreakForCounter:   10,
		},
		Waves: WaveConfig{
			BaseMS:            35000,
			StepMS:            500,
			MinMS:             20000,
			FlickerIntervalMS: 150,
			FlickerCount:      6,
			Backgrounds: []BackgroundRange{
				{MinWave: 1, MaxWave: 2, ID: 0},
				{MinWave: 3, MaxWave: 4, ID: 1},
				{MinWave: 5, MaxWave: 7, ID: 2},
				{MinWave: 8, MaxWave: 9, ID: 3},
				{MinWave: 10, MaxWave: 12, ID: 4},
				{MinWave: 13, MaxWave: 14, ID: 5},
				{MinWave: 15, MaxWave: 17, ID: 6},
				{MinWave: 18, ID: 7},
			},
		},
		Spawning: SpawnConfig{
			InitialCows:      8,
			InitialCowsLater: 5,
			CowBaseMS:        1800,
			CowStepMS:        50,
			CowMaxCutMS:      800,
			CowMinMS:         1000,
			EnemyWarmupMS:    5000,
			EnemyFirstMS:     6000,
			EnemyBaseMS:      6000,
			EnemyStepMS:      300,
			EnemyMinMS:       1500,
			PowerupBaseMS:    20000,
			PowerupStepMS:    800,
			PowerupMinMS:     10000,
		},
		Powerups: PowerupConfig{
			Weights: map[string]int{
				"shield":       2,
				"double_score": 2,
				"golden_cows":  1,
				"extra_life":   1,
				"milkstorm":    1,
				"time_freeze":  1,
				"emp":          1,
			},
			LifeMS:        10000,
			ShieldMS:      10000,
			DoubleScoreMS: 10000,
			MilkstormMS:   5000,
			TimeFreezeMS:  6000,
			GoldenCows:    5,
		},
		Freeze: FreezeConfig{
			CollectibleFactor: 0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:   true,
			StartWave: 1,
		},
		Ships: []ShipConfig{
			{ID: DefaultShipID, Name: "Moo-Mover", Loadout: runstate.Loadout{Skin: DefaultShipID}},
		},
	}
}

// GetDefaultYAML returns the embedded default configuration.
// Used by tooling that writes a starter config for the user to edit.
func GetDefaultYAML() []byte {
	return defaultMilkrunYAML
}
