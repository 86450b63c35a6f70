// Package config provides YAML-based configuration loading for Milk Run:
// playfield and spawn tuning, wave pacing, powerups, difficulty presets and
// the hangar's ship catalog.
package config

import "github.com/vovakirdan/milkrun/internal/runstate"

// MilkrunConfig contains all tunable parameters of a run.
type MilkrunConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Waves      WaveConfig       `yaml:"waves"`
	Spawning   SpawnConfig      `yaml:"spawning"`
	Powerups   PowerupConfig    `yaml:"powerups"`
	Freeze     FreezeConfig     `yaml:"freeze"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Ships      []ShipConfig     `yaml:"ships"`
	Items      []ItemConfig     `yaml:"items"`
}

// FieldConfig is the logical playfield in pixels.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // player clamp margin
}

// PlayerConfig holds player tuning that is not part of a ship loadout.
type PlayerConfig struct {
	MaxLives           int     `yaml:"max_lives"`
	InvincibleMS       float64 `yaml:"invincible_ms"`
	ReviveInvincibleMS float64 `yaml:"revive_invincible_ms"`
	TouchDeadband      float64 `yaml:"touch_deadband"`
	TouchFollow        float64 `yaml:"touch_follow"`
	JoystickDeadzone   float64 `yaml:"joystick_deadzone"`
	StreakForCounter   int     `yaml:"streak_for_counter"`
}

// WaveConfig defines wave pacing and the background table.
type WaveConfig struct {
	BaseMS            float64           `yaml:"base_ms"`
	StepMS            float64           `yaml:"step_ms"`
	MinMS             float64           `yaml:"min_ms"`
	FlickerIntervalMS float64           `yaml:"flicker_interval_ms"`
	FlickerCount      int               `yaml:"flicker_count"`
	Backgrounds       []BackgroundRange `yaml:"backgrounds"`
}

// BackgroundRange maps an inclusive wave range to a background id.
// MaxWave 0 means open-ended.
type BackgroundRange struct {
	MinWave int `yaml:"min_wave"`
	MaxWave int `yaml:"max_wave"`
	ID      int `yaml:"id"`
}

// SpawnConfig defines spawn cadence for cows, enemies and powerups.
type SpawnConfig struct {
	InitialCows      int     `yaml:"initial_cows"`
	InitialCowsLater int     `yaml:"initial_cows_later"`
	CowBaseMS        float64 `yaml:"cow_base_ms"`
	CowStepMS        float64 `yaml:"cow_step_ms"`
	CowMaxCutMS      float64 `yaml:"cow_max_cut_ms"`
	CowMinMS         float64 `yaml:"cow_min_ms"`
	EnemyWarmupMS    float64 `yaml:"enemy_warmup_ms"`
	EnemyFirstMS     float64 `yaml:"enemy_first_ms"`
	EnemyBaseMS      float64 `yaml:"enemy_base_ms"`
	EnemyStepMS      float64 `yaml:"enemy_step_ms"`
	EnemyMinMS       float64 `yaml:"enemy_min_ms"`
	PowerupBaseMS    float64 `yaml:"powerup_base_ms"`
	PowerupStepMS    float64 `yaml:"powerup_step_ms"`
	PowerupMinMS     float64 `yaml:"powerup_min_ms"`
}

// PowerupConfig holds pickup weights and effect durations.
type PowerupConfig struct {
	Weights       map[string]int `yaml:"weights"`
	LifeMS        float64        `yaml:"life_ms"`
	ShieldMS      float64        `yaml:"shield_ms"`
	DoubleScoreMS float64        `yaml:"double_score_ms"`
	MilkstormMS   float64        `yaml:"milkstorm_ms"`
	TimeFreezeMS  float64        `yaml:"time_freeze_ms"`
	GoldenCows    int            `yaml:"golden_cows"`
}

// FreezeConfig controls how hard the time freeze slows collectibles.
type FreezeConfig struct {
	CollectibleFactor float64 `yaml:"collectible_factor"`
}

// DifficultyConfig selects where a run starts and whether waves advance.
type DifficultyConfig struct {
	Enabled    bool `yaml:"enabled"` // wave progression
	StartWave  int  `yaml:"start_wave"`
	ExtraLives int  `yaml:"extra_lives"`
}

// ShipConfig is one hangar entry.
type ShipConfig struct {
	ID      string           `yaml:"id"`
	Name    string           `yaml:"name"`
	Price   int              `yaml:"price"`
	Loadout runstate.Loadout `yaml:"loadout"`
}

// ItemConfig is a one-shot item bought for the next run.
// ID matches a runstate.Flags yaml key.
type ItemConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// Item looks up a next-run item by id.
func (c MilkrunConfig) Item(id string) (ItemConfig, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemConfig{}, false
}

// Ship looks up a ship by id.
func (c MilkrunConfig) Ship(id string) (ShipConfig, bool) {
	for _, s := range c.Ships {
		if s.ID == id {
			return s, true
		}
	}
	return ShipConfig{}, false
}

// BackgroundForWave returns the background id for a wave.
// Waves below the first range map to the first entry; waves past a closed
// final range map to the last entry.
func (w WaveConfig) BackgroundForWave(wave int) int {
	if len(w.Backgrounds) == 0 {
		return 0
	}
	for _, r := range w.Backgrounds {
		if wave >= r.MinWave && (r.MaxWave == 0 || wave <= r.MaxWave) {
			return r.ID
		}
	}
	if wave < w.Backgrounds[0].MinWave {
		return w.Backgrounds[0].ID
	}
	return w.Backgrounds[len(w.Backgrounds)-1].ID
}
