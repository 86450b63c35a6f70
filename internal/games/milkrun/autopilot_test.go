package milkrun

import (
	"testing"
	"time"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

func TestAutopilotSteersToCow(t *testing.T) {
	e := newTestEngine(t)
	p := e.world.Player.Pos
	e.world.Cows = []Cow{stillCow(p.Add(core.V(100, 0)), false)}

	snap := e.Snapshot()
	in := Autopilot(&snap)
	if in.Mode != ControlJoystick {
		t.Fatalf("mode = %v, expected joystick", in.Mode)
	}
	if in.Stick.X < 0.9 {
		t.Errorf("stick = %+v, expected to point right", in.Stick)
	}
}

func TestAutopilotPrefersGolden(t *testing.T) {
	e := newTestEngine(t)
	p := e.world.Player.Pos
	e.world.Cows = []Cow{
		stillCow(p.Add(core.V(-60, 0)), false),
		stillCow(p.Add(core.V(100, 0)), true),
	}

	snap := e.Snapshot()
	if in := Autopilot(&snap); in.Stick.X <= 0 {
		t.Errorf("stick = %+v, expected to head for the golden cow", in.Stick)
	}
}

func TestAutopilotEvadesMissile(t *testing.T) {
	e := newTestEngine(t)
	p := e.world.Player.Pos
	e.world.Missiles = []Missile{{Pos: p.Add(core.V(-30, 0)), Life: missileLifeMS}}

	snap := e.Snapshot()
	if in := Autopilot(&snap); in.Stick.X <= 0 {
		t.Errorf("stick = %+v, expected to move away from the missile", in.Stick)
	}
}

func TestAutopilotFiresCounter(t *testing.T) {
	e := newTestEngine(t)
	p := e.world.Player.Pos
	e.run.CounterAttackReady = true
	e.world.Player.wasMoving = true
	e.world.Enemies = []Enemy{{Pos: p.Add(core.V(0, -60)), Speed: 1, ShootDelay: 1e9}}

	snap := e.Snapshot()
	in := Autopilot(&snap)
	if !in.Stick.IsZero() {
		t.Fatalf("stick = %+v, expected a stop", in.Stick)
	}

	events := e.Tick(in, 16*time.Millisecond)
	if ev, ok := findEvent[runstate.CounterAttackTriggered](events); !ok || ev.Destroyed != 1 {
		t.Errorf("CounterAttackTriggered = %+v, expected one tank destroyed", ev)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	opts := Options{Config: config.DefaultMilkrunConfig(), Seed: 99}
	a := Simulate(opts, 10*time.Second, time.Second/60)
	b := Simulate(opts, 10*time.Second, time.Second/60)

	if a.Hash != b.Hash || a.State != b.State || a.Ticks != b.Ticks {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
	if !a.State.GameOver && a.Ticks != 600 {
		t.Errorf("ticks = %d, expected 600", a.Ticks)
	}
	if a.Elapsed > 10*time.Second+time.Second/60 {
		t.Errorf("elapsed = %v, expected at most 10s", a.Elapsed)
	}
}

func TestEventName(t *testing.T) {
	if got := eventName(runstate.CowCollected{}); got != "CowCollected" {
		t.Errorf("eventName = %q, expected %q", got, "CowCollected")
	}
}
