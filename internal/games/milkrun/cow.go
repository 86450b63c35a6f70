package milkrun

import (
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// edgePoint returns a point margin pixels outside a random edge:
// 0 top, 1 right, 2 bottom, 3 left.
func edgePoint(r Rand, b core.Bounds, margin float64) core.Vec2 {
	w, h := b.Width(), b.Height()
	switch r.Intn(4) {
	case 0:
		return core.V(r.Float64()*w, -margin)
	case 1:
		return core.V(w+margin, r.Float64()*h)
	case 2:
		return core.V(r.Float64()*w, h+margin)
	default:
		return core.V(-margin, r.Float64()*h)
	}
}

// outside reports whether p lies more than margin beyond the field.
func outside(b core.Bounds, p core.Vec2, margin float64) bool {
	return p.X < b.MinX-margin || p.X > b.MaxX+margin || p.Y < b.MinY-margin || p.Y > b.MaxY+margin
}

// freezeFactor scales collectible movement while time is frozen.
func (e *Engine) freezeFactor() float64 {
	if e.world.TimeFreeze.Active() {
		return e.cfg.Freeze.CollectibleFactor
	}
	return 1
}

func (e *Engine) charm() float64 {
	if e.ext.Flags.GoldenCowCharm {
		return charmFactor
	}
	return 1
}

// spawnCow adds a cow just outside the field heading for a point inside it.
// The golden roll is always drawn; a pending golden bonus forces the outcome.
func (e *Engine) spawnCow() {
	w := e.world
	pos := edgePoint(e.rng, w.Bounds, cowSpawnMargin)
	target := core.V(
		between(e.rng, 40, w.Bounds.Width()-40),
		between(e.rng, 60, w.Bounds.Height()-60),
	)

	golden := chance(e.rng, GoldenChance(w.Wave))
	if w.GoldenBonus > 0 {
		golden = true
		w.GoldenBonus--
	}

	var speed float64
	if golden {
		speed = between(e.rng, 2.2, 3.0) * e.charm()
	} else {
		speed = between(e.rng, 1.0, 1.6)
	}
	dir, _ := pos.Toward(target)

	w.Cows = append(w.Cows, Cow{
		ID:          w.newID(),
		Pos:         pos,
		Vel:         dir.Scale(speed),
		Target:      target,
		State:       CowEntering,
		Golden:      golden,
		WanderAfter: between(e.rng, cowWanderMinMS, cowWanderMaxMS),
	})
}

func (e *Engine) updateCows() {
	w := e.world
	dt := w.DeltaTime
	mult := e.freezeFactor()

	kept := w.Cows[:0]
	for _, c := range w.Cows {
		c.Age += dt
		c.WanderTimer += dt

		switch c.State {
		case CowEntering:
			if c.Pos.Dist(c.Target) > cowArriveDist {
				c.Pos = c.Pos.Add(c.Vel.Scale(mult))
			} else {
				c.State = CowWandering
				c.WanderTimer = 0
			}
		case CowWandering:
			if c.WanderTimer > c.WanderAfter {
				e.repickCowTarget(&c)
			}
			c.Pos = c.Pos.Add(c.Vel.Scale(mult))
		case CowLeaving:
			c.Pos = c.Pos.Add(c.Vel.Scale(mult))
		}

		if c.Pos.Dist(w.Player.Pos) < w.Player.BeamSize/2 {
			e.collectCow(c)
			continue
		}
		if outside(w.Bounds, c.Pos, cowCullMargin) {
			continue
		}
		kept = append(kept, c)
	}
	w.Cows = kept
}

// repickCowTarget chooses the next wander target, or an exit once the cow
// has been around long enough.
func (e *Engine) repickCowTarget(c *Cow) {
	b := e.world.Bounds
	if chance(e.rng, cowLeaveChance) && c.Age > cowLeaveAfter {
		c.Target = edgePoint(e.rng, b, 50)
		c.State = CowLeaving
	} else {
		c.Target = core.V(between(e.rng, 40, b.Width()-40), between(e.rng, 40, b.Height()-40))
	}

	var speed float64
	if c.Golden {
		speed = between(e.rng, 1.8, 2.6) * e.charm()
	} else {
		speed = between(e.rng, 0.4, 0.8)
	}
	dir, _ := c.Pos.Toward(c.Target)
	c.Vel = dir.Scale(speed)
	c.WanderTimer = 0
	c.WanderAfter = between(e.rng, cowWanderMinMS, cowWanderMaxMS)
}

func (e *Engine) collectCow(c Cow) {
	w := e.world
	w.Player.TractorBeam.Start(cowBeamMS)

	points, milk := cowPoints, cowMilk
	if c.Golden {
		points, milk = goldenPoints, goldenMilk
	}
	e.addScore(points)
	e.addMilk(milk)

	e.run.CowsCollected++
	e.emit(runstate.CowCollected{Golden: c.Golden, Total: e.run.CowsCollected})
	e.bumpStreak()

	if c.Golden {
		e.burst(c.Pos, 10, 700, core.ColorGold, '*')
	} else {
		e.burst(c.Pos, 6, 400, core.ColorWhite, '.')
	}
}
