package milkrun

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/milkrun/internal/config"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// fixedRand always returns the same values.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

func TestGoldenChance(t *testing.T) {
	tests := []struct {
		wave     int
		expected float64
	}{
		{1, 0.09},
		{5, 0.13},
		{12, 0.20},
		{30, 0.20},
	}
	for _, tt := range tests {
		if got := GoldenChance(tt.wave); !approx(got, tt.expected) {
			t.Errorf("GoldenChance(%d) = %v, expected %v", tt.wave, got, tt.expected)
		}
	}
}

func TestHomingStrength(t *testing.T) {
	tests := []struct {
		wave     int
		anti     bool
		expected float64
	}{
		{1, false, 0.10},
		{10, false, 0.18},
		{40, false, 0.18},
		{10, true, 0.09},
	}
	for _, tt := range tests {
		if got := HomingStrength(tt.wave, tt.anti); !approx(got, tt.expected) {
			t.Errorf("HomingStrength(%d, %v) = %v, expected %v", tt.wave, tt.anti, got, tt.expected)
		}
	}
}

func TestMissileMaxSpeed(t *testing.T) {
	tests := []struct {
		wave     int
		anti     bool
		expected float64
	}{
		{1, false, 1.8},
		{10, false, 3.0},
		{50, false, 3.0},
		{10, true, 2.1},
	}
	for _, tt := range tests {
		if got := MissileMaxSpeed(tt.wave, tt.anti); !approx(got, tt.expected) {
			t.Errorf("MissileMaxSpeed(%d, %v) = %v, expected %v", tt.wave, tt.anti, got, tt.expected)
		}
	}
}

func TestShootDelay(t *testing.T) {
	tests := []struct {
		wave     int
		jam      bool
		expected float64
	}{
		{1, false, 2900},
		{10, false, 2000},
		{20, false, 1500},
		{20, true, 2500},
	}
	for _, tt := range tests {
		if got := ShootDelay(tt.wave, tt.jam); got != tt.expected {
			t.Errorf("ShootDelay(%d, %v) = %v, expected %v", tt.wave, tt.jam, got, tt.expected)
		}
	}
}

func TestEnemySpeedAndMissileLife(t *testing.T) {
	if got := EnemySpeed(1); !approx(got, 0.6) {
		t.Errorf("EnemySpeed(1) = %v, expected 0.6", got)
	}
	if got := EnemySpeed(100); !approx(got, 2.6) {
		t.Errorf("EnemySpeed(100) = %v, expected 2.6", got)
	}
	if got := MissileLife(true); got != 8000 {
		t.Errorf("MissileLife(true) = %v, expected 8000", got)
	}
}

func TestSpawnIntervals(t *testing.T) {
	cfg := config.DefaultMilkrunConfig()

	if got := WaveDuration(cfg.Waves, 1); got != 34500 {
		t.Errorf("WaveDuration(1) = %v, expected 34500", got)
	}
	if got := WaveDuration(cfg.Waves, 40); got != 20000 {
		t.Errorf("WaveDuration(40) = %v, expected 20000", got)
	}
	if got := CowInterval(cfg.Spawning, 1); got != 1750 {
		t.Errorf("CowInterval(1) = %v, expected 1750", got)
	}
	if got := CowInterval(cfg.Spawning, 30); got != 1000 {
		t.Errorf("CowInterval(30) = %v, expected 1000", got)
	}
	if got := EnemyInterval(cfg.Spawning, 1, 1000); !math.IsInf(got, 1) {
		t.Errorf("EnemyInterval during warmup = %v, expected +Inf", got)
	}
	if got := EnemyInterval(cfg.Spawning, 1, 6000); got != 6000 {
		t.Errorf("EnemyInterval(1) = %v, expected 6000", got)
	}
	if got := EnemyInterval(cfg.Spawning, 4, 0); got != 4800 {
		t.Errorf("EnemyInterval(4) = %v, expected 4800", got)
	}
	if got := PowerupInterval(cfg.Spawning, 20); got != 10000 {
		t.Errorf("PowerupInterval(20) = %v, expected 10000", got)
	}
	if got := InitialCows(cfg.Spawning, 1); got != 8 {
		t.Errorf("InitialCows(1) = %d, expected 8", got)
	}
	if got := InitialCows(cfg.Spawning, 5); got != 5 {
		t.Errorf("InitialCows(5) = %d, expected 5", got)
	}
}

func TestJokerEligible(t *testing.T) {
	tests := []struct {
		name     string
		counter  int
		blessing bool
		roll     float64
		expected bool
	}{
		{"one wave", 1, false, 0.0, false},
		{"two waves lucky", 2, false, 0.3, true},
		{"two waves unlucky", 2, false, 0.7, false},
		{"three waves", 3, false, 0.99, true},
		{"blessed one wave", 1, true, 0.99, true},
		{"blessed none", 0, true, 0.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jokerEligible(fixedRand{f: tt.roll}, tt.counter, tt.blessing)
			if got != tt.expected {
				t.Errorf("jokerEligible = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected float64
	}{
		{16 * time.Millisecond, 16},
		{5 * time.Second, 100},
		{-time.Second, 0},
		{100 * time.Millisecond, 100},
	}
	for _, tt := range tests {
		if got := ClampDelta(tt.in); got != tt.expected {
			t.Errorf("ClampDelta(%v) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestWorldDeltaNeverExceedsCap(t *testing.T) {
	e := newTestEngine(t)
	e.Tick(Input{}, time.Hour)
	if e.world.DeltaTime != 100 {
		t.Errorf("DeltaTime = %v, expected 100", e.world.DeltaTime)
	}
	if e.world.Elapsed != 100 {
		t.Errorf("Elapsed = %v, expected 100", e.world.Elapsed)
	}
}

func TestBackgroundTransition(t *testing.T) {
	e := newTestEngine(t)
	e.world.Wave = 4
	e.world.Background = BackgroundState{Current: e.cfg.Waves.BackgroundForWave(4)}

	e.advanceWave(5)
	bg := &e.world.Background
	if !bg.Transitioning || bg.Old != 1 || bg.New != 2 {
		t.Fatalf("transition = %+v, expected 1 -> 2", *bg)
	}

	e.world.DeltaTime = 150
	for i := 1; i <= 6; i++ {
		e.updateBackground()
		if i < 6 && !bg.Transitioning {
			t.Fatalf("transition ended after %d flickers, expected 6", i)
		}
	}
	if bg.Transitioning {
		t.Error("transition still running after 6 flickers")
	}
	if bg.Current != 2 {
		t.Errorf("Current = %d, expected 2", bg.Current)
	}

	// A wave change inside the same table entry starts nothing.
	e.advanceWave(6)
	if bg.Transitioning {
		t.Error("wave 6 started a transition inside [5,7]")
	}
}

func TestFlickerAlternates(t *testing.T) {
	e := newTestEngine(t)
	e.world.Background = BackgroundState{Current: 1}
	e.startBackgroundTransition(2)

	e.world.DeltaTime = 100
	e.updateBackground()
	if got := e.world.Background.Visible(); got != 1 {
		t.Errorf("Visible before first flicker = %d, expected 1", got)
	}

	e.world.DeltaTime = 150
	var seen []int
	for range 6 {
		e.updateBackground()
		seen = append(seen, e.world.Background.Visible())
	}
	expected := []int{2, 1, 2, 1, 2, 2}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("Visible after flicker %d = %d, expected %d (sequence %v)", i+1, seen[i], expected[i], seen)
		}
	}
	if e.world.Background.Transitioning {
		t.Error("transition still running after 6 flickers")
	}
}

func TestSpawnTimersFireAfterInterval(t *testing.T) {
	e := newTestEngine(t)
	e.world.DeltaTime = 16
	e.world.cowTimer = CowInterval(e.cfg.Spawning, e.world.Wave) - 16

	e.scheduleWaves()
	if len(e.world.Cows) != 0 {
		t.Fatalf("cows = %d at exactly the interval, expected 0", len(e.world.Cows))
	}
	e.scheduleWaves()
	if len(e.world.Cows) != 1 {
		t.Errorf("cows = %d past the interval, expected 1", len(e.world.Cows))
	}
}
