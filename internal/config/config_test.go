package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchGoDefaults(t *testing.T) {
	cfg, err := LoadMilkrun("")
	if err != nil {
		t.Fatalf("LoadMilkrun() failed: %v", err)
	}
	def := DefaultMilkrunConfig()

	if cfg.Field != def.Field {
		t.Errorf("Field = %+v, expected %+v", cfg.Field, def.Field)
	}
	if cfg.Player != def.Player {
		t.Errorf("Player = %+v, expected %+v", cfg.Player, def.Player)
	}
	if cfg.Spawning != def.Spawning {
		t.Errorf("Spawning = %+v, expected %+v", cfg.Spawning, def.Spawning)
	}
	if len(cfg.Waves.Backgrounds) != len(def.Waves.Backgrounds) {
		t.Errorf("len(Backgrounds) = %d, expected %d", len(cfg.Waves.Backgrounds), len(def.Waves.Backgrounds))
	}
	for name, w := range def.Powerups.Weights {
		if cfg.Powerups.Weights[name] != w {
			t.Errorf("weight %s = %d, expected %d", name, cfg.Powerups.Weights[name], w)
		}
	}
	if _, ok := cfg.Ship(DefaultShipID); !ok {
		t.Errorf("default ship %q missing from embedded config", DefaultShipID)
	}
}

func TestLoadMilkrunCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("player:\n  max_lives: 9\nfreeze:\n  collectible_factor: 0.3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMilkrun(path)
	if err != nil {
		t.Fatalf("LoadMilkrun() failed: %v", err)
	}
	if cfg.Player.MaxLives != 9 {
		t.Errorf("MaxLives = %d, expected 9", cfg.Player.MaxLives)
	}
	if cfg.Freeze.CollectibleFactor != 0.3 {
		t.Errorf("CollectibleFactor = %v, expected 0.3", cfg.Freeze.CollectibleFactor)
	}
	if cfg.Field.Width != 360 {
		t.Errorf("Field.Width = %v, expected untouched default 360", cfg.Field.Width)
	}
}

func TestLoadMilkrunErrors(t *testing.T) {
	if _, err := LoadMilkrun(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadMilkrun() with a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field:\n  width: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadMilkrun(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadMilkrun() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestBackgroundForWave(t *testing.T) {
	w := DefaultMilkrunConfig().Waves

	tests := []struct {
		wave     int
		expected int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
		{5, 2},
		{6, 2},
		{7, 2},
		{9, 3},
		{12, 4},
		{14, 5},
		{17, 6},
		{18, 7},
		{99, 7},
	}

	for _, tc := range tests {
		if got := w.BackgroundForWave(tc.wave); got != tc.expected {
			t.Errorf("BackgroundForWave(%d) = %d, expected %d", tc.wave, got, tc.expected)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("ParsePreset(nightmare) error = %v, expected ErrUnknownPreset", err)
	}
}

func TestApplyMilkrunPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		startWave  int
		extraLives int
	}{
		{DifficultyEasy, true, 1, 2},
		{DifficultyNormal, true, 1, 0},
		{DifficultyHard, true, 5, -1},
		{DifficultyFixed, false, 1, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultMilkrunConfig()
			ApplyMilkrunPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.StartWave != tc.startWave {
				t.Errorf("StartWave = %d, expected %d", cfg.Difficulty.StartWave, tc.startWave)
			}
			if cfg.Difficulty.ExtraLives != tc.extraLives {
				t.Errorf("ExtraLives = %d, expected %d", cfg.Difficulty.ExtraLives, tc.extraLives)
			}
		})
	}

	cfg := DefaultMilkrunConfig()
	ApplyMilkrunPreset(&cfg, "")
	if cfg.Difficulty != DefaultMilkrunConfig().Difficulty {
		t.Error("empty preset should leave difficulty untouched")
	}
}

func TestItemLookup(t *testing.T) {
	cfg, err := LoadMilkrun("")
	if err != nil {
		t.Fatal(err)
	}
	it, ok := cfg.Item("joker_blessing")
	if !ok || it.Price != 2000 {
		t.Errorf("Item(joker_blessing) = %+v, %v", it, ok)
	}
	if _, ok := cfg.Item("nope"); ok {
		t.Error("Item(nope) should not exist")
	}
}
