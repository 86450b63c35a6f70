package milkrun

import (
	"math"
	"testing"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

func TestWeightTableProbabilities(t *testing.T) {
	table := NewWeightTable(config.DefaultMilkrunConfig().Powerups.Weights)
	expected := map[PowerupKind]float64{
		PowerupShield:      0.2,
		PowerupDoubleScore: 0.2,
		PowerupGoldenCows:  0.1,
		PowerupExtraLife:   0.1,
		PowerupMilkstorm:   0.1,
		PowerupTimeFreeze:  0.1,
		PowerupEMP:         0.1,
	}
	for kind, want := range expected {
		if got := table.Probability(kind); !approx(got, want) {
			t.Errorf("Probability(%s) = %v, expected %v", kind, got, want)
		}
	}
}

func TestWeightTableDrawConverges(t *testing.T) {
	table := NewWeightTable(config.DefaultMilkrunConfig().Powerups.Weights)
	rng := NewSimpleRNG(99)

	const n = 100000
	counts := make(map[PowerupKind]int)
	for range n {
		counts[table.Draw(rng)]++
	}
	for _, kind := range PowerupKinds() {
		got := float64(counts[kind]) / n
		if want := table.Probability(kind); math.Abs(got-want) > 0.01 {
			t.Errorf("frequency of %s = %.4f, expected %.2f", kind, got, want)
		}
	}
}

func TestWeightTableSkipsZeroWeights(t *testing.T) {
	table := NewWeightTable(map[string]int{"emp": 3, "shield": 0, "bogus": 5})
	for i := range 10 {
		if got := table.Draw(fixedRand{i: i}); got != PowerupEMP {
			t.Fatalf("Draw = %s, expected emp", got)
		}
	}
	if got := NewWeightTable(nil).Draw(fixedRand{}); got != PowerupShield {
		t.Errorf("empty table Draw = %s, expected shield", got)
	}
}

func TestPowerupKindNames(t *testing.T) {
	weights := config.DefaultMilkrunConfig().Powerups.Weights
	for _, k := range PowerupKinds() {
		if _, ok := weights[k.String()]; !ok {
			t.Errorf("kind %s missing from default weights", k)
		}
		if k.Glyph() == '?' {
			t.Errorf("kind %s has no glyph", k)
		}
	}
}

func pickUp(t *testing.T, e *Engine, kind PowerupKind) []runstate.Event {
	t.Helper()
	e.world.Powerups = []Powerup{{ID: 1, Pos: e.world.Player.Pos, Kind: kind, Life: 5000}}
	events := e.Tick(Input{}, frame)
	if len(e.world.Powerups) != 0 {
		t.Fatalf("%s not picked up", kind)
	}
	if pc, ok := findEvent[runstate.PowerupCollected](events); !ok || pc.Kind != kind.String() {
		t.Fatalf("PowerupCollected = %+v, expected %s", pc, kind)
	}
	return events
}

func TestPowerupEffects(t *testing.T) {
	t.Run("shield with bonus", func(t *testing.T) {
		e := newTestEngineWith(t, runstate.External{Loadout: runstate.Loadout{ShieldDurationBonus: 2}})
		pickUp(t, e, PowerupShield)
		if got := e.world.Player.Shield.Remaining; got != 12000 {
			t.Errorf("shield = %v, expected 12000", got)
		}
	})

	t.Run("double score", func(t *testing.T) {
		e := newTestEngine(t)
		pickUp(t, e, PowerupDoubleScore)
		if got := e.world.DoubleScore.Remaining; got != 10000 {
			t.Errorf("double score = %v, expected 10000", got)
		}
	})

	t.Run("golden cows", func(t *testing.T) {
		e := newTestEngine(t)
		pickUp(t, e, PowerupGoldenCows)
		if e.world.GoldenBonus != 5 {
			t.Errorf("GoldenBonus = %d, expected 5", e.world.GoldenBonus)
		}
	})

	t.Run("extra life capped", func(t *testing.T) {
		e := newTestEngine(t)
		pickUp(t, e, PowerupExtraLife)
		if e.State().Lives != 4 {
			t.Errorf("Lives = %d, expected 4", e.State().Lives)
		}
		e.run.Lives = 5
		pickUp(t, e, PowerupExtraLife)
		if e.State().Lives != 5 {
			t.Errorf("Lives = %d, expected cap 5", e.State().Lives)
		}
	})

	t.Run("milkstorm and freeze", func(t *testing.T) {
		e := newTestEngine(t)
		pickUp(t, e, PowerupMilkstorm)
		pickUp(t, e, PowerupTimeFreeze)
		if !e.world.Player.Milkstorm.Active() || !e.world.TimeFreeze.Active() {
			t.Error("effects not active")
		}
		if got := e.world.TimeFreeze.Remaining; got != 6000 {
			t.Errorf("freeze = %v, expected 6000", got)
		}
	})

	t.Run("emp", func(t *testing.T) {
		e := newTestEngine(t)
		e.world.Enemies = []Enemy{
			{ID: 10, Pos: core.V(20, 20), ShootDelay: 1e9},
			{ID: 11, Pos: core.V(340, 20), ShootDelay: 1e9},
		}
		e.world.Missiles = []Missile{{ID: 12, Pos: core.V(100, 100), Life: 5000}}
		events := pickUp(t, e, PowerupEMP)
		if len(e.world.Enemies) != 0 || len(e.world.Missiles) != 0 {
			t.Errorf("enemies/missiles = %d/%d, expected 0/0", len(e.world.Enemies), len(e.world.Missiles))
		}
		st := e.State()
		if st.Score != 200 || st.TanksDestroyed != 2 {
			t.Errorf("score/tanks = %d/%d, expected 200/2", st.Score, st.TanksDestroyed)
		}
		if td, ok := findEvent[runstate.TanksDestroyed](events); !ok || td.Count != 2 {
			t.Errorf("TanksDestroyed = %+v, expected count 2", td)
		}
		if !e.world.EMP.Active || e.world.EMP.MaxRadius != 200 {
			t.Errorf("EMP = %+v, expected active 200 px blast", e.world.EMP)
		}
	})
}

func TestPowerupExpires(t *testing.T) {
	e := newTestEngine(t)
	e.world.Powerups = []Powerup{{ID: 1, Pos: core.V(30, 30), Kind: PowerupEMP, Life: 10}}
	e.Tick(Input{}, frame)
	if len(e.world.Powerups) != 0 {
		t.Error("expired powerup still on the field")
	}
}

func TestSpawnPowerupInsideMargin(t *testing.T) {
	e := newTestEngine(t)
	for range 200 {
		e.spawnPowerup()
	}
	inner := e.world.Bounds.Inset(powerupMargin)
	for _, pu := range e.world.Powerups {
		if !inner.Contains(pu.Pos) {
			t.Fatalf("powerup at %v outside %+v", pu.Pos, inner)
		}
		if pu.Life != 10000 {
			t.Fatalf("powerup life = %v, expected 10000", pu.Life)
		}
	}
}

func TestAreaBlastRadius(t *testing.T) {
	var b AreaBlast
	b.start(core.V(0, 0), 800, 200)
	b.tick(400)
	if got := b.Radius(); !approx(got, 100) {
		t.Errorf("Radius = %v, expected 100", got)
	}
	b.tick(400)
	if b.Active || b.Radius() != 0 {
		t.Errorf("blast = %+v, expected finished", b)
	}
}

func TestTimedEffect(t *testing.T) {
	var e TimedEffect
	if e.Active() {
		t.Fatal("zero effect is active")
	}
	e.Start(100)
	if e.Tick(60) {
		t.Error("expired too early")
	}
	if !e.Tick(60) {
		t.Error("expected expiry on second tick")
	}
	if e.Active() || e.Remaining != 0 {
		t.Errorf("effect = %+v, expected cleared", e)
	}
	if e.Tick(10) {
		t.Error("inactive effect reported expiry")
	}
	e.Start(-5)
	if e.Active() {
		t.Error("negative start activated the effect")
	}
}
