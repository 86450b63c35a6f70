package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// LoadMilkrun loads the Milk Run configuration.
// The embedded defaults are parsed first and the first file found is layered
// over them, so a user file only needs the keys it changes.
// Search order: customPath -> ~/.milkrun/configs/milkrun.yaml -> ./configs/milkrun.yaml
func LoadMilkrun(customPath string) (MilkrunConfig, error) {
	cfg, err := embeddedMilkrun()
	if err != nil {
		return cfg, err
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("milkrun.yaml"), filepath.Join("configs", "milkrun.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := cfg.clone()
		if err := yaml.Unmarshal(data, &layered); err != nil {
			continue
		}
		if layered.Validate() == nil {
			return layered, nil
		}
	}

	return cfg, nil
}

// embeddedMilkrun parses the embedded defaults, falling back to the Go defaults.
func embeddedMilkrun() (MilkrunConfig, error) {
	var cfg MilkrunConfig
	if err := yaml.Unmarshal(defaultMilkrunYAML, &cfg); err != nil {
		return DefaultMilkrunConfig(), nil
	}
	if err := cfg.Validate(); err != nil {
		return DefaultMilkrunConfig(), nil
	}
	return cfg, nil
}

// clone copies the config deeply enough that unmarshalling into the copy
// cannot write through to c.
func (c MilkrunConfig) clone() MilkrunConfig {
	out := c
	out.Powerups.Weights = make(map[string]int, len(c.Powerups.Weights))
	for k, v := range c.Powerups.Weights {
		out.Powerups.Weights[k] = v
	}
	out.Waves.Backgrounds = append([]BackgroundRange(nil), c.Waves.Backgrounds...)
	out.Ships = append([]ShipConfig(nil), c.Ships...)
	out.Items = append([]ItemConfig(nil), c.Items...)
	return out
}

// Validate checks the values the engine divides by or indexes with.
func (c MilkrunConfig) Validate() error {
	if c.Field.Width <= 2*c.Field.Margin || c.Field.Height <= 2*c.Field.Margin {
		return fmt.Errorf("%w: field %vx%v too small for margin %v", ErrInvalidConfig, c.Field.Width, c.Field.Height, c.Field.Margin)
	}
	if c.Waves.FlickerIntervalMS <= 0 {
		return fmt.Errorf("%w: flicker_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.Waves.MinMS <= 0 || c.Spawning.CowMinMS <= 0 || c.Spawning.EnemyMinMS <= 0 || c.Spawning.PowerupMinMS <= 0 {
		return fmt.Errorf("%w: minimum intervals must be positive", ErrInvalidConfig)
	}
	total := 0
	for name, w := range c.Powerups.Weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight for %s", ErrInvalidConfig, name)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("%w: powerup weights sum to zero", ErrInvalidConfig)
	}
	if len(c.Ships) == 0 {
		return fmt.Errorf("%w: no ships defined", ErrInvalidConfig)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".milkrun", "configs", filename)
}
