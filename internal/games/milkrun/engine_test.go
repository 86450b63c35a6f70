package milkrun

import (
	"testing"
	"time"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

const frame = 16 * time.Millisecond

// newTestEngine returns an engine on the default config with an empty field.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngineWith(t, runstate.External{})
}

func newTestEngineWith(t *testing.T, ext runstate.External) *Engine {
	t.Helper()
	e := NewEngine(Options{
		Config: config.DefaultMilkrunConfig(),
		Source: runstate.Static(ext),
		Seed:   1,
	})
	e.world.Cows = nil
	return e
}

// recordingSink keeps every published batch.
type recordingSink struct {
	batches [][]runstate.Event
}

func (s *recordingSink) Publish(events []runstate.Event) {
	s.batches = append(s.batches, events)
}

func countEvents[T runstate.Event](events []runstate.Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func findEvent[T runstate.Event](events []runstate.Event) (T, bool) {
	for _, ev := range events {
		if v, ok := ev.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// stillCow is a cow that stays where it is placed.
func stillCow(pos core.Vec2, golden bool) Cow {
	return Cow{Pos: pos, State: CowWandering, Golden: golden, WanderAfter: 1e9}
}

func TestNewEngineStartsRun(t *testing.T) {
	sink := &recordingSink{}
	e := NewEngine(Options{Config: config.DefaultMilkrunConfig(), Sink: sink, Seed: 7})

	st := e.State()
	if st.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", st.Lives)
	}
	if st.Wave != 1 {
		t.Errorf("Wave = %d, expected 1", st.Wave)
	}
	if len(e.world.Cows) != 8 {
		t.Errorf("initial cows = %d, expected 8", len(e.world.Cows))
	}
	want := core.V(180, 480)
	if e.world.Player.Pos != want {
		t.Errorf("player at %v, expected %v", e.world.Player.Pos, want)
	}
	if len(sink.batches) != 1 {
		t.Fatalf("baseline batches = %d, expected 1", len(sink.batches))
	}
	if lc, ok := findEvent[runstate.LivesChanged](sink.batches[0]); !ok || lc.Lives != 3 {
		t.Errorf("baseline LivesChanged = %+v, expected 3", lc)
	}
}

func TestInitialLivesIncludeBonuses(t *testing.T) {
	e := newTestEngineWith(t, runstate.External{
		Loadout: runstate.Loadout{BonusStartingLife: true},
		Flags:   runstate.Flags{BonusLife: true},
	})
	if got := e.State().Lives; got != 5 {
		t.Errorf("Lives = %d, expected 5", got)
	}
}

func TestTickPublishesReturnedEvents(t *testing.T) {
	sink := &recordingSink{}
	e := NewEngine(Options{Config: config.DefaultMilkrunConfig(), Sink: sink, Seed: 3})
	e.world.Cows = []Cow{stillCow(e.world.Player.Pos, false)}
	sink.batches = nil

	events := e.Tick(Input{}, frame)
	if len(events) == 0 {
		t.Fatal("expected events from a pickup")
	}
	if len(sink.batches) != 1 || len(sink.batches[0]) != len(events) {
		t.Fatalf("sink got %d batches, expected one batch of %d", len(sink.batches), len(events))
	}
	if e.Tick(Input{}, frame) != nil {
		t.Error("quiet tick returned events")
	}
}

func TestCowPickupScoring(t *testing.T) {
	tests := []struct {
		name      string
		ext       runstate.External
		golden    bool
		double    bool
		wantScore int
		wantMilk  int
	}{
		{"plain cow", runstate.External{}, false, false, 250, 1},
		{"golden cow", runstate.External{}, true, false, 800, 5},
		{"double score", runstate.External{}, true, true, 1600, 5},
		{"milk bonus rounds down", runstate.External{Loadout: runstate.Loadout{MilkBonus: 1.5}}, true, false, 800, 7},
		{"double milk after bonus", runstate.External{
			Loadout: runstate.Loadout{MilkBonus: 1.5},
			Flags:   runstate.Flags{DoubleMilk: true},
		}, true, false, 800, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngineWith(t, tt.ext)
			if tt.double {
				e.world.DoubleScore.Start(10000)
			}
			e.world.Cows = []Cow{stillCow(e.world.Player.Pos, tt.golden)}

			events := e.Tick(Input{}, frame)
			st := e.State()
			if st.Score != tt.wantScore {
				t.Errorf("Score = %d, expected %d", st.Score, tt.wantScore)
			}
			if st.Milk != tt.wantMilk {
				t.Errorf("Milk = %d, expected %d", st.Milk, tt.wantMilk)
			}
			if st.CowsCollected != 1 || st.Streak != 1 {
				t.Errorf("collected/streak = %d/%d, expected 1/1", st.CowsCollected, st.Streak)
			}
			if !e.world.Player.TractorBeam.Active() {
				t.Error("tractor beam not started")
			}
			if cc, ok := findEvent[runstate.CowCollected](events); !ok || cc.Golden != tt.golden {
				t.Errorf("CowCollected = %+v, expected golden=%v", cc, tt.golden)
			}
		})
	}
}

func TestCounterAttackReadyAtTen(t *testing.T) {
	e := newTestEngine(t)
	e.run.Streak = 8

	e.world.Cows = []Cow{stillCow(e.world.Player.Pos, false)}
	e.Tick(Input{}, frame)
	if e.State().CounterAttackReady {
		t.Fatal("ready at streak 9")
	}

	e.world.Cows = []Cow{stillCow(e.world.Player.Pos, false)}
	events := e.Tick(Input{}, frame)
	if !e.State().CounterAttackReady {
		t.Fatal("not ready at streak 10")
	}
	if n := countEvents[runstate.CounterAttackReady](events); n != 1 {
		t.Errorf("CounterAttackReady events = %d, expected 1", n)
	}
}

func TestCounterAttackTriggersOnStop(t *testing.T) {
	e := newTestEngine(t)
	e.run.Streak = 9
	e.world.Cows = []Cow{stillCow(e.world.Player.Pos, false)}

	e.Tick(Input{Keys: Keys{Right: true}}, frame)
	if !e.State().CounterAttackReady {
		t.Fatal("expected counter-attack ready")
	}

	p := e.world.Player.Pos
	e.world.Enemies = []Enemy{
		{ID: 100, Pos: p.Add(core.V(50, 0)), Speed: 0.6, ShootDelay: 3000},
		{ID: 101, Pos: p.Add(core.V(0, -300)), Speed: 0.6, ShootDelay: 3000},
	}
	e.world.Missiles = []Missile{{ID: 102, Pos: p.Add(core.V(-60, 0)), Life: 5000}}

	events := e.Tick(Input{}, frame)
	st := e.State()
	if st.Streak != 0 || st.CounterAttackReady {
		t.Errorf("streak/ready = %d/%v, expected 0/false", st.Streak, st.CounterAttackReady)
	}
	trig, ok := findEvent[runstate.CounterAttackTriggered](events)
	if !ok || trig.Destroyed != 1 {
		t.Errorf("CounterAttackTriggered = %+v, expected 1 destroyed", trig)
	}
	if countEvents[runstate.CounterAttackReset](events) != 1 {
		t.Error("expected one CounterAttackReset")
	}
	if len(e.world.Enemies) != 1 || e.world.Enemies[0].ID != 101 {
		t.Errorf("enemies left = %+v, expected only the far one", e.world.Enemies)
	}
	if len(e.world.Missiles) != 0 {
		t.Errorf("missiles left = %d, expected 0", len(e.world.Missiles))
	}
	if st.Score != 350 || st.TanksDestroyed != 1 {
		t.Errorf("score/tanks = %d/%d, expected 350/1", st.Score, st.TanksDestroyed)
	}
	if !e.world.Counter.Active {
		t.Error("counter blast not active")
	}

	// Stopping again without readiness does nothing.
	e.Tick(Input{Keys: Keys{Left: true}}, frame)
	if got := e.Tick(Input{}, frame); countEvents[runstate.CounterAttackTriggered](got) != 0 {
		t.Error("counter-attack fired while not ready")
	}
}

func TestReviveOnlyOnce(t *testing.T) {
	e := newTestEngineWith(t, runstate.External{
		Loadout: runstate.Loadout{StartingLives: 1, ReviveOnDeath: true},
	})
	e.run.Milk = 100

	e.world.Missiles = []Missile{{ID: 1, Pos: e.world.Player.Pos, Life: 5000, SpawnAt: -10000}}
	events := e.Tick(Input{}, frame)

	st := e.State()
	if st.Lives != 1 || st.Milk != 50 || !st.ReviveUsed || st.GameOver {
		t.Fatalf("after revive state = %+v, expected lives 1, milk 50, revive used", st)
	}
	rev, ok := findEvent[runstate.Revived](events)
	if !ok || rev.MilkLost != 50 {
		t.Errorf("Revived = %+v, expected MilkLost 50", rev)
	}
	if !e.world.Player.Invincible.Active() || e.world.Player.Invincible.Remaining != 3000 {
		t.Errorf("invincible = %v, expected 3000 ms", e.world.Player.Invincible.Remaining)
	}
	if len(e.world.Missiles) != 0 {
		t.Error("missile survived the hit")
	}

	e.world.Player.Invincible.Clear()
	e.world.Missiles = []Missile{{ID: 2, Pos: e.world.Player.Pos, Life: 5000, SpawnAt: -10000}}
	events = e.Tick(Input{}, frame)
	st = e.State()
	if !st.GameOver || st.Lives != 0 {
		t.Fatalf("after second hit state = %+v, expected game over", st)
	}
	if countEvents[runstate.GameOver](events) != 1 {
		t.Error("expected exactly one GameOver event")
	}

	if got := e.Tick(Input{Keys: Keys{Up: true}}, frame); got != nil {
		t.Errorf("tick after game over returned %v, expected nil", got)
	}
	if e.State() != st {
		t.Error("state changed after game over")
	}
}

func TestDamageWithoutRevive(t *testing.T) {
	e := newTestEngineWith(t, runstate.External{
		Loadout: runstate.Loadout{InvincibilityDurationBonus: 1},
	})
	e.run.Streak = 12
	e.run.CounterAttackReady = true

	e.damagePlayer()
	st := e.State()
	if st.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", st.Lives)
	}
	if st.Streak != 0 || st.CounterAttackReady {
		t.Errorf("streak/ready = %d/%v, expected reset", st.Streak, st.CounterAttackReady)
	}
	if got := e.world.Player.Invincible.Remaining; got != 2500 {
		t.Errorf("invincible = %v, expected 2500", got)
	}
}

func TestShieldAbsorbsMissile(t *testing.T) {
	e := newTestEngine(t)
	e.world.Player.Shield.Start(10000)
	e.world.Missiles = []Missile{{ID: 1, Pos: e.world.Player.Pos, Life: 5000, SpawnAt: -10000}}

	events := e.Tick(Input{}, frame)
	if e.world.Player.Shield.Active() {
		t.Error("shield still active")
	}
	if len(e.world.Missiles) != 0 {
		t.Error("missile not destroyed by shield")
	}
	if e.State().Lives != 3 {
		t.Errorf("Lives = %d, expected 3", e.State().Lives)
	}
	if countEvents[runstate.ShieldAbsorbed](events) != 1 {
		t.Error("expected ShieldAbsorbed")
	}
}

func TestInvinciblePlayerLetsMissilePass(t *testing.T) {
	e := newTestEngine(t)
	e.world.Player.Invincible.Start(1000)
	e.world.Missiles = []Missile{{ID: 1, Pos: e.world.Player.Pos, Life: 5000, SpawnAt: -10000}}

	e.Tick(Input{}, frame)
	if len(e.world.Missiles) != 1 {
		t.Errorf("missiles = %d, expected the missile to pass", len(e.world.Missiles))
	}
	if e.State().Lives != 3 {
		t.Errorf("Lives = %d, expected 3", e.State().Lives)
	}
}

func TestTimeFreezeStopsHostiles(t *testing.T) {
	e := newTestEngine(t)
	e.world.TimeFreeze.Start(6000)
	start := core.V(20, 20)
	e.world.Enemies = []Enemy{{ID: 1, Pos: start, Speed: 1, ShootDelay: 1}}
	e.world.Missiles = []Missile{{ID: 2, Pos: core.V(100, 100), Vel: core.V(1, 0), Life: 5000}}

	e.Tick(Input{}, frame)
	if e.world.Enemies[0].Pos != start {
		t.Errorf("enemy moved to %v while frozen", e.world.Enemies[0].Pos)
	}
	if e.world.Missiles[0].Pos != core.V(100, 100) || e.world.Missiles[0].Life != 5000 {
		t.Errorf("missile updated while frozen: %+v", e.world.Missiles[0])
	}
}

func TestTimeFreezeSlowsCows(t *testing.T) {
	e := newTestEngine(t)
	e.world.TimeFreeze.Start(6000)
	c := stillCow(core.V(50, 50), false)
	c.Vel = core.V(1, 0)
	e.world.Cows = []Cow{c}

	e.Tick(Input{}, frame)
	if got := e.world.Cows[0].Pos.X; !approx(got, 50.5) {
		t.Errorf("cow x = %v, expected 50.5", got)
	}
}

func TestEnemyFiresAfterDelay(t *testing.T) {
	e := newTestEngine(t)
	e.world.Enemies = []Enemy{{ID: 1, Pos: core.V(20, 20), Speed: 0.6, ShootTimer: 2990, ShootDelay: 3000}}

	e.Tick(Input{}, frame)
	if len(e.world.Missiles) != 1 {
		t.Fatalf("missiles = %d, expected 1", len(e.world.Missiles))
	}
	m := e.world.Missiles[0]
	// The missile already aged through its first update.
	if m.SourceID != 1 || m.Life != 10000-16 {
		t.Errorf("missile = %+v, expected source 1 and life 9984", m)
	}
	if e.world.Enemies[0].ShootTimer != 0 {
		t.Errorf("ShootTimer = %v, expected 0", e.world.Enemies[0].ShootTimer)
	}
}

func TestMissileGraceSparesEnemies(t *testing.T) {
	e := newTestEngine(t)
	e.world.Elapsed = 5000
	pos := core.V(40, 40)
	e.world.Enemies = []Enemy{{ID: 1, Pos: pos, Speed: 0, ShootDelay: 1e9}}
	e.world.Missiles = []Missile{{ID: 2, Pos: pos, Life: 5000, SpawnAt: 5000}}

	e.Tick(Input{}, frame)
	if len(e.world.Enemies) != 1 {
		t.Fatal("enemy destroyed by a missile in its grace period")
	}

	e.world.Missiles[0].SpawnAt = 0
	e.world.Missiles[0].Pos = e.world.Enemies[0].Pos
	e.Tick(Input{}, frame)
	if len(e.world.Enemies) != 0 {
		t.Fatal("enemy survived a missile after grace")
	}
	if st := e.State(); st.TanksDestroyed != 1 || st.Score != 100 {
		t.Errorf("tanks/score = %d/%d, expected 1/100", st.TanksDestroyed, st.Score)
	}
}

func TestMissileDestroysCowAndSparesJoker(t *testing.T) {
	e := newTestEngine(t)
	cowPos := core.V(60, 60)
	e.world.Cows = []Cow{stillCow(cowPos, false)}
	e.world.Missiles = []Missile{{ID: 1, Pos: cowPos, Life: 5000}}

	e.Tick(Input{}, frame)
	if len(e.world.Cows) != 0 || len(e.world.Missiles) != 0 {
		t.Errorf("cows/missiles = %d/%d, expected 0/0", len(e.world.Cows), len(e.world.Missiles))
	}

	e.world.Joker.Put(JokerCow{Pos: core.V(200, 200), Life: 5000})
	j, _ := e.world.Joker.Get()
	e.world.Missiles = []Missile{{ID: 2, Pos: j.Pos, Life: 5000}}
	e.Tick(Input{}, frame)
	if !e.world.Joker.Alive() {
		t.Error("joker destroyed by a missile")
	}
	if len(e.world.Missiles) != 0 {
		t.Error("missile survived hitting the joker")
	}
}

func TestMilkstorm(t *testing.T) {
	e := newTestEngine(t)
	e.world.Player.Milkstorm.Start(5000)
	p := e.world.Player.Pos
	e.world.Missiles = []Missile{
		{ID: 1, Pos: p.Add(core.V(30, 0)), Life: 5000, SpawnAt: -5000},
		{ID: 2, Pos: p.Add(core.V(100, 0)), Life: 5000, SpawnAt: -5000},
	}
	e.world.Enemies = []Enemy{{ID: 3, Pos: p.Add(core.V(0, 39)), Speed: 0, ShootDelay: 1e9}}

	e.Tick(Input{}, frame)
	if len(e.world.Missiles) != 1 || e.world.Missiles[0].ID != 2 {
		t.Errorf("missiles = %+v, expected only the far one", e.world.Missiles)
	}
	if len(e.world.Enemies) != 0 {
		t.Error("enemy inside the vortex survived")
	}
	if st := e.State(); st.TanksDestroyed != 1 {
		t.Errorf("TanksDestroyed = %d, expected 1", st.TanksDestroyed)
	}
}

func TestMissilesCulledOutsideField(t *testing.T) {
	e := newTestEngine(t)
	e.world.Missiles = []Missile{{ID: 1, Pos: core.V(-100, 10), Life: 5000}}
	e.Tick(Input{}, frame)
	if len(e.world.Missiles) != 0 {
		t.Error("off-field missile not culled")
	}
}

func TestSweepMissilePairs(t *testing.T) {
	tests := []struct {
		name      string
		xs        []float64
		wantLeft  int
		wantBooms int
	}{
		{"pair", []float64{0, 10}, 0, 1},
		{"pair reversed", []float64{10, 0}, 0, 1},
		{"chain of three", []float64{0, 10, 20}, 1, 1},
		{"two pairs", []float64{0, 10, 100, 110}, 0, 2},
		{"apart", []float64{0, 18, 36}, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := make([]Missile, len(tt.xs))
			for i, x := range tt.xs {
				ms[i] = Missile{ID: i, Pos: core.V(x, 0)}
			}
			booms := 0
			left := sweepMissilePairs(ms, func(core.Vec2) { booms++ })
			if len(left) != tt.wantLeft {
				t.Errorf("left = %d, expected %d", len(left), tt.wantLeft)
			}
			if booms != tt.wantBooms {
				t.Errorf("booms = %d, expected %d", booms, tt.wantBooms)
			}
		})
	}
}

func TestPlayerMovement(t *testing.T) {
	t.Run("keys", func(t *testing.T) {
		e := newTestEngine(t)
		start := e.world.Player.Pos
		e.Tick(Input{Keys: Keys{Right: true, Up: true}}, frame)
		want := start.Add(core.V(4, -4))
		if e.world.Player.Pos != want {
			t.Errorf("pos = %v, expected %v", e.world.Player.Pos, want)
		}
	})

	t.Run("joystick deadzone", func(t *testing.T) {
		e := newTestEngine(t)
		start := e.world.Player.Pos
		e.Tick(Input{Mode: ControlJoystick, Stick: core.V(0.05, 0.05)}, frame)
		if e.world.Player.Pos != start {
			t.Errorf("moved inside deadzone to %v", e.world.Player.Pos)
		}
		e.Tick(Input{Mode: ControlJoystick, Stick: core.V(0.5, 0)}, frame)
		if got := e.world.Player.Pos.X; !approx(got, start.X+2) {
			t.Errorf("x = %v, expected %v", got, start.X+2)
		}
	})

	t.Run("touch follows", func(t *testing.T) {
		e := newTestEngine(t)
		start := e.world.Player.Pos
		target := start.Add(core.V(0, -100))
		e.Tick(Input{Mode: ControlTouch, Touch: Touch{Target: target, Active: true}}, frame)
		if got := e.world.Player.Pos.Y; !approx(got, start.Y-4) {
			t.Errorf("y = %v, expected %v", got, start.Y-4)
		}

		near := e.world.Player.Pos.Add(core.V(3, 0))
		before := e.world.Player.Pos
		e.Tick(Input{Mode: ControlTouch, Touch: Touch{Target: near, Active: true}}, frame)
		if e.world.Player.Pos != before {
			t.Error("moved inside the touch deadband")
		}
	})

	t.Run("clamped to margin", func(t *testing.T) {
		e := newTestEngine(t)
		e.world.Player.Pos = core.V(26, 26)
		e.Tick(Input{Keys: Keys{Left: true, Up: true}}, frame)
		if e.world.Player.Pos != core.V(25, 25) {
			t.Errorf("pos = %v, expected (25,25)", e.world.Player.Pos)
		}
	})
}

func TestCowLifecycle(t *testing.T) {
	e := newTestEngine(t)
	e.world.Player.Pos = core.V(300, 600)
	c := Cow{ID: 1, Pos: core.V(100, 100), Target: core.V(105, 100), Vel: core.V(1, 0), State: CowEntering, WanderAfter: 4000}
	e.world.Cows = []Cow{c}

	e.Tick(Input{}, frame)
	if got := e.world.Cows[0].State; got != CowWandering {
		t.Fatalf("state = %v, expected wandering", got)
	}

	e.world.Cows[0].Pos = core.V(-200, 100)
	e.Tick(Input{}, frame)
	if len(e.world.Cows) != 0 {
		t.Error("cow far outside the field was not removed")
	}
}

func TestGoldenBonusForcesGolden(t *testing.T) {
	e := newTestEngine(t)
	e.world.GoldenBonus = 2
	e.spawnCow()
	e.spawnCow()
	e.spawnCow()
	if !e.world.Cows[0].Golden || !e.world.Cows[1].Golden {
		t.Error("bonus spawns were not golden")
	}
	if e.world.GoldenBonus != 0 {
		t.Errorf("GoldenBonus = %d, expected 0", e.world.GoldenBonus)
	}
}

func TestJoker(t *testing.T) {
	e := newTestEngine(t)
	e.spawnJoker()
	first, ok := e.world.Joker.Get()
	if !ok {
		t.Fatal("joker not spawned")
	}
	pos := first.Pos
	e.spawnJoker()
	if j, _ := e.world.Joker.Get(); j.Pos != pos {
		t.Error("second spawn replaced the live joker")
	}

	e.run.Streak = 3
	e.world.Joker.Put(JokerCow{Pos: e.world.Player.Pos, Life: 5000})
	events := e.Tick(Input{}, frame)
	st := e.State()
	if e.world.Joker.Alive() {
		t.Fatal("joker not collected")
	}
	if st.Score != 25000 || st.Milk != 50 || st.CowsCollected != 1 {
		t.Errorf("state = %+v, expected 25000 score, 50 milk, 1 cow", st)
	}
	if st.Streak != 3 {
		t.Errorf("Streak = %d, expected unchanged 3", st.Streak)
	}
	if cc, ok := findEvent[runstate.CowCollected](events); !ok || !cc.Joker {
		t.Error("expected a joker CowCollected event")
	}
}

func TestJokerExpires(t *testing.T) {
	e := newTestEngine(t)
	e.world.Joker.Put(JokerCow{Pos: core.V(100, 100), Life: 10})
	e.Tick(Input{}, frame)
	if e.world.Joker.Alive() {
		t.Error("joker outlived its life")
	}
}

func TestJokerBouncesOffWalls(t *testing.T) {
	e := newTestEngine(t)
	e.world.Joker.Put(JokerCow{Pos: core.V(20, 300), Vel: core.V(-4, 0), Life: 5000})
	e.Tick(Input{}, frame)
	j, ok := e.world.Joker.Get()
	if !ok {
		t.Fatal("joker vanished")
	}
	if j.Pos.X < jokerWallMargin || j.Vel.X < jokerBaseSpeed*jokerBounceFactor {
		t.Errorf("joker = %+v, expected to bounce right", *j)
	}
	if !j.Escape.Active() {
		t.Error("escape window not opened")
	}
}

func TestWaveAdvance(t *testing.T) {
	e := newTestEngine(t)
	e.world.waveTimer = 34490
	events := e.Tick(Input{}, frame)
	if e.world.Wave != 2 || e.State().Wave != 2 {
		t.Errorf("wave = %d, expected 2", e.world.Wave)
	}
	if wc, ok := findEvent[runstate.WaveChanged](events); !ok || wc.Wave != 2 {
		t.Errorf("WaveChanged = %+v, expected 2", wc)
	}
}

func TestFixedDifficultyHoldsWave(t *testing.T) {
	cfg := config.DefaultMilkrunConfig()
	config.ApplyMilkrunPreset(&cfg, config.DifficultyFixed)
	e := NewEngine(Options{Config: cfg, Seed: 1})
	for range 3000 {
		e.Tick(Input{}, 100*time.Millisecond)
		if e.State().GameOver {
			break
		}
	}
	if e.world.Wave != 1 {
		t.Errorf("wave = %d, expected 1 with progression disabled", e.world.Wave)
	}
}

func TestDeterminism(t *testing.T) {
	inputs := make([]Input, 3000)
	for i := range inputs {
		switch (i / 40) % 4 {
		case 0:
			inputs[i].Keys.Left = true
		case 1:
			inputs[i].Keys.Up = true
		case 2:
			inputs[i].Keys.Right = true
		case 3:
			inputs[i].Keys.Down = true
		}
	}

	run := func() Snapshot {
		e := NewEngine(Options{Config: config.DefaultMilkrunConfig(), Seed: 12345})
		for _, in := range inputs {
			e.Tick(in, frame)
		}
		return e.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Run != s2.Run {
		t.Errorf("run state differs: %+v vs %+v", s1.Run, s2.Run)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t)
	e.world.Cows = []Cow{stillCow(core.V(10, 10), false)}
	snap := e.Snapshot()
	snap.Cows[0].Pos = core.V(99, 99)
	if e.world.Cows[0].Pos != core.V(10, 10) {
		t.Error("mutating the snapshot changed the world")
	}
}

func TestCloseTearsDown(t *testing.T) {
	e := NewEngine(Options{Config: config.DefaultMilkrunConfig(), Seed: 1})
	e.world.Enemies = []Enemy{{ID: 1}}
	e.Close()
	if len(e.world.Cows) != 0 || len(e.world.Enemies) != 0 || e.world.Joker.Alive() {
		t.Error("Close left entities behind")
	}
}

func TestNothingResolvesAfterLethalHit(t *testing.T) {
	tests := []struct {
		name string
		kind PowerupKind
	}{
		{"extra life", PowerupExtraLife},
		{"emp", PowerupEMP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			e.run.Lives = 1
			p := e.world.Player.Pos
			e.world.Enemies = []Enemy{{Pos: core.V(40, 40), Speed: 0.6, ShootDelay: 1e9}}
			e.world.Missiles = []Missile{
				{ID: 1, Pos: p, Life: 5000, SpawnAt: -10000},
				{ID: 2, Pos: core.V(40, 40), Life: 5000, SpawnAt: -10000},
			}
			e.world.Powerups = []Powerup{{ID: 1, Pos: p, Kind: tt.kind, Life: 5000}}

			events := e.Tick(Input{}, frame)
			st := e.State()
			if !st.GameOver || st.Lives != 0 {
				t.Fatalf("state = %+v, expected game over with 0 lives", st)
			}
			over, ok := findEvent[runstate.GameOver](events)
			if !ok {
				t.Fatal("expected GameOver event")
			}
			if over.Score != st.Score || st.Score != 0 {
				t.Errorf("GameOver score = %d, final score = %d, expected both 0", over.Score, st.Score)
			}
			if st.TanksDestroyed != 0 {
				t.Errorf("TanksDestroyed = %d, expected 0", st.TanksDestroyed)
			}
			if countEvents[runstate.PowerupCollected](events) != 0 {
				t.Error("powerup collected after game over")
			}
		})
	}
}

func TestMissileHitUsesDistanceBeforeMove(t *testing.T) {
	e := newTestEngine(t)
	p := e.world.Player.Pos
	// 24 px away and flying off: after the move it is outside the hit radius.
	e.world.Missiles = []Missile{{ID: 1, Pos: p.Add(core.V(0, -24)), Vel: core.V(0, -3), Life: 5000, SpawnAt: -10000}}

	e.Tick(Input{}, frame)
	if got := e.State().Lives; got != 2 {
		t.Errorf("Lives = %d, expected 2", got)
	}
	if len(e.world.Missiles) != 0 {
		t.Error("missile survived hitting the player")
	}
}

func TestMissilePairPastEdgeExplodes(t *testing.T) {
	e := newTestEngine(t)
	e.world.Missiles = []Missile{
		{ID: 1, Pos: core.V(-60, 100), Life: 5000},
		{ID: 2, Pos: core.V(-60, 110), Life: 5000},
	}
	e.Tick(Input{}, frame)
	if len(e.world.Missiles) != 0 {
		t.Errorf("missiles left = %d, expected 0", len(e.world.Missiles))
	}
	if len(e.world.Particles) == 0 {
		t.Error("pair past the edge was culled without exploding")
	}
}
