package milkrun

import (
	"math"

	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// updatePlayer ticks status timers, integrates input and fires the
// counter-attack when the player stops while it is armed.
func (e *Engine) updatePlayer(in Input) {
	w := e.world
	p := &w.Player
	dt := w.DeltaTime

	p.Invincible.Tick(dt)
	p.Shield.Tick(dt)
	p.TractorBeam.Tick(dt)
	p.Milkstorm.Tick(dt)
	w.DoubleScore.Tick(dt)
	w.TimeFreeze.Tick(dt)

	moving := e.isMoving(in)
	if p.wasMoving && !moving && e.run.CounterAttackReady && !w.Counter.Active {
		e.triggerCounterAttack()
	}
	p.wasMoving = moving

	if in.Keys.Left {
		p.Pos.X -= p.Speed
	}
	if in.Keys.Right {
		p.Pos.X += p.Speed
	}
	if in.Keys.Up {
		p.Pos.Y -= p.Speed
	}
	if in.Keys.Down {
		p.Pos.Y += p.Speed
	}

	switch in.Mode {
	case ControlTouch:
		if in.Touch.Active {
			dir, dist := p.Pos.Toward(in.Touch.Target)
			if dist > e.cfg.Player.TouchDeadband {
				step := math.Min(p.Speed, dist*e.cfg.Player.TouchFollow)
				p.Pos = p.Pos.Add(dir.Scale(step))
			}
		}
	case ControlJoystick:
		if e.stickEngaged(in.Stick) {
			p.Pos = p.Pos.Add(in.Stick.Scale(p.Speed))
		}
	}

	p.Pos = w.Bounds.Inset(e.cfg.Field.Margin).ClampPoint(p.Pos)
}

func (e *Engine) stickEngaged(s core.Vec2) bool {
	dz := e.cfg.Player.JoystickDeadzone
	return math.Abs(s.X) > dz || math.Abs(s.Y) > dz
}

func (e *Engine) isMoving(in Input) bool {
	if in.Keys.Any() {
		return true
	}
	switch in.Mode {
	case ControlJoystick:
		return e.stickEngaged(in.Stick)
	case ControlTouch:
		return in.Touch.Active
	}
	return false
}

// triggerCounterAttack destroys hostiles around the player and disarms
// the counter-attack.
func (e *Engine) triggerCounterAttack() {
	w := e.world
	center := w.Player.Pos
	count := e.destroyAllHostiles(center, counterRadius)
	if count > 0 {
		e.addScore(tankPoints * count)
		e.addTanks(count)
	}
	e.emit(runstate.CounterAttackTriggered{Destroyed: count})
	e.resetStreak()
	w.Counter.start(center, counterMS, counterRadius)
	e.log.Debug("counter-attack", "destroyed", count)
}
