package milkrun

import (
	"math"

	"github.com/vovakirdan/milkrun/internal/core"
)

const (
	autoDangerRadius = 90.0
	autoPowerupReach = 160.0
	autoCounterReach = 110.0
)

// Autopilot steers a joystick toward the most valuable pickup in reach and
// away from nearby missiles. With the counter-attack armed and a tank close
// by it stops moving, which fires the blast.
func Autopilot(s *Snapshot) Input {
	p := s.Player.Pos
	in := Input{Mode: ControlJoystick}

	if s.Run.CounterAttackReady && s.Player.wasMoving {
		for _, en := range s.Enemies {
			if p.Dist(en.Pos) < autoCounterReach {
				return in
			}
		}
	}

	var steer core.Vec2
	if target, ok := autoTarget(s); ok {
		steer = target.Sub(p).Normalize()
	}

	for _, m := range s.Missiles {
		d := p.Dist(m.Pos)
		if d >= autoDangerRadius || d == 0 {
			continue
		}
		away := p.Sub(m.Pos).Normalize()
		steer = steer.Add(away.Scale(2 * (autoDangerRadius - d) / autoDangerRadius))
	}

	// Keep off the walls so evasion has room to work.
	edge := 40.0
	if p.X < edge {
		steer.X += 0.5
	}
	if p.X > s.Width-edge {
		steer.X -= 0.5
	}
	if p.Y < edge {
		steer.Y += 0.5
	}
	if p.Y > s.Height-edge {
		steer.Y -= 0.5
	}

	in.Stick = steer.Normalize()
	return in
}

// autoTarget picks the joker, then a close powerup, then the nearest cow.
func autoTarget(s *Snapshot) (core.Vec2, bool) {
	p := s.Player.Pos
	if s.JokerLive {
		return s.Joker.Pos, true
	}

	best, bestD := core.Vec2{}, math.Inf(1)
	for _, pu := range s.Powerups {
		if d := p.Dist(pu.Pos); d < autoPowerupReach && d < bestD {
			best, bestD = pu.Pos, d
		}
	}
	if !math.IsInf(bestD, 1) {
		return best, true
	}

	field := core.NewBounds(s.Width, s.Height)
	for _, c := range s.Cows {
		if !field.Contains(c.Pos) {
			continue
		}
		// Golden cows count double in the ranking.
		d := p.Dist(c.Pos)
		if c.Golden {
			d /= 2
		}
		if d < bestD {
			best, bestD = c.Pos, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}
