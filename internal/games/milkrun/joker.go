package milkrun

import (
	"math"

	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// spawnJoker places the joker just outside the field. It does nothing while
// a joker is already alive.
func (e *Engine) spawnJoker() {
	w := e.world
	if w.Joker.Alive() {
		return
	}
	b := w.Bounds
	pos := edgePoint(e.rng, b, jokerSpawnMargin)
	target := core.V(between(e.rng, 50, b.Width()-50), between(e.rng, 50, b.Height()-50))
	dir, _ := pos.Toward(target)
	w.Joker.Put(JokerCow{
		Pos:  pos,
		Vel:  dir.Scale(jokerBaseSpeed),
		Life: jokerLifeMS,
	})
	e.log.Debug("joker spawned", "wave", w.Wave, "x", int(pos.X), "y", int(pos.Y))
}

func (e *Engine) updateJoker() {
	w := e.world
	j, ok := w.Joker.Get()
	if !ok {
		return
	}
	dt := w.DeltaTime

	j.Life -= dt
	if j.Life <= 0 {
		w.Joker.Clear()
		return
	}
	j.SwirlAngle += dt * jokerSwirlRate
	mult := e.freezeFactor()
	j.Escape.Tick(dt)

	if !j.Escape.Active() {
		away, dist := w.Player.Pos.Toward(j.Pos)
		if dist > 0 && dist < jokerDetectRange {
			j.Vel = j.Vel.Add(away.Scale(jokerFleeStrength))
		}
		if chance(e.rng, jokerTurnChance) {
			a := e.rng.Float64() * 2 * math.Pi
			j.Vel = core.V(math.Cos(a), math.Sin(a)).Scale(jokerBaseSpeed)
		}
	}

	limit := jokerBaseSpeed * jokerMaxFactor
	if j.Escape.Active() {
		limit = jokerBaseSpeed * jokerEscapeFactor
	}
	j.Vel = j.Vel.Limit(limit)

	j.Pos = j.Pos.Add(j.Vel.Scale(mult))
	swirl := core.V(math.Cos(j.SwirlAngle), math.Sin(j.SwirlAngle))
	j.Pos = j.Pos.Add(swirl.Scale(jokerSwirlRadius * mult * 0.1))

	e.bounceJoker(j)

	if j.Pos.Dist(w.Player.Pos) < w.Player.BeamSize/2 {
		e.collectJoker(*j)
		w.Joker.Clear()
	}
}

// bounceJoker pushes the joker back inside the wall margin with a minimum
// outward speed and opens a short escape window.
func (e *Engine) bounceJoker(j *JokerCow) {
	b := e.world.Bounds
	const m = jokerWallMargin
	minOut := jokerBaseSpeed * jokerBounceFactor
	hit := false

	if j.Pos.X < b.MinX+m {
		j.Pos.X = b.MinX + m + 5
		j.Vel.X = math.Max(minOut, math.Abs(j.Vel.X))
		hit = true
	} else if j.Pos.X > b.MaxX-m {
		j.Pos.X = b.MaxX - m - 5
		j.Vel.X = -math.Max(minOut, math.Abs(j.Vel.X))
		hit = true
	}
	if j.Pos.Y < b.MinY+m {
		j.Pos.Y = b.MinY + m + 5
		j.Vel.Y = math.Max(minOut, math.Abs(j.Vel.Y))
		hit = true
	} else if j.Pos.Y > b.MaxY-m {
		j.Pos.Y = b.MaxY - m - 5
		j.Vel.Y = -math.Max(minOut, math.Abs(j.Vel.Y))
		hit = true
	}
	if hit {
		j.Escape.Start(jokerEscapeMS)
	}
}

func (e *Engine) collectJoker(j JokerCow) {
	e.world.Player.TractorBeam.Start(jokerBeamMS)
	e.addScore(jokerPoints)
	e.addMilk(jokerMilk)
	e.run.CowsCollected++
	e.emit(runstate.CowCollected{Joker: true, Total: e.run.CowsCollected})
	e.rainbowBurst(j.Pos, 20, 900)
	e.log.Debug("joker collected", "score", e.run.Score)
}
