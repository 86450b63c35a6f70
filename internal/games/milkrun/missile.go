package milkrun

import "github.com/vovakirdan/milkrun/internal/core"

// updateMissiles runs homing and every missile collision in a fixed order:
// milkstorm vortex, enemies, cows, joker, player. Survivors are culled at the
// field margin and then swept pairwise.
func (e *Engine) updateMissiles() {
	w := e.world
	dt := w.DeltaTime
	homing := HomingStrength(w.Wave, e.ext.Flags.AntiGravity)
	maxSpeed := MissileMaxSpeed(w.Wave, e.ext.Flags.AntiGravity)
	storm := w.Player.Milkstorm.Active()

	kept := w.Missiles[:0]
	for _, m := range w.Missiles {
		if e.run.GameOver {
			kept = append(kept, m)
			continue
		}
		m.Life -= dt
		if m.Life <= 0 {
			continue
		}
		grace := w.Elapsed-m.SpawnAt < missileGraceMS

		if storm {
			pull, dist := m.Pos.Toward(w.Player.Pos)
			if dist < vortexRadius {
				m.Vel = m.Vel.Add(pull.Scale(vortexMissilePull))
				if dist < vortexMissileSwall {
					e.burst(m.Pos, 4, 300, core.ColorWhite, '.')
					continue
				}
			}
		}

		// The player check uses the distance before this tick's move.
		dir, toPlayer := m.Pos.Toward(w.Player.Pos)
		m.Vel = m.Vel.Add(dir.Scale(homing)).Limit(maxSpeed)
		m.Pos = m.Pos.Add(m.Vel)

		if !grace && e.missileHitsEnemy(m) {
			continue
		}
		if e.missileHitsCow(m) {
			continue
		}
		if j, ok := w.Joker.Get(); ok && m.Pos.Dist(j.Pos) < hitJokerRadius {
			continue
		}
		if toPlayer < hitPlayerRadius && e.hitPlayer(m) {
			continue
		}
		kept = append(kept, m)
	}
	kept = sweepMissilePairs(kept, func(p core.Vec2) {
		e.burst(p, 10, 400, core.ColorOrange, '*')
	})

	// Pairs just past the edge still annihilate before the cull.
	w.Missiles = kept[:0]
	for _, m := range kept {
		if !outside(w.Bounds, m.Pos, missileCullMargin) {
			w.Missiles = append(w.Missiles, m)
		}
	}
}

// missileHitsEnemy destroys the newest enemy in range, if any.
func (e *Engine) missileHitsEnemy(m Missile) bool {
	w := e.world
	for i := len(w.Enemies) - 1; i >= 0; i-- {
		en := w.Enemies[i]
		if m.Pos.Dist(en.Pos) < hitEnemyRadius {
			w.Enemies = append(w.Enemies[:i], w.Enemies[i+1:]...)
			e.addScore(tankPoints)
			e.addTanks(1)
			e.burst(en.Pos, 8, 500, core.ColorOrange, '*')
			return true
		}
	}
	return false
}

// missileHitsCow destroys the newest cow in range, if any.
func (e *Engine) missileHitsCow(m Missile) bool {
	w := e.world
	for i := len(w.Cows) - 1; i >= 0; i-- {
		if m.Pos.Dist(w.Cows[i].Pos) < hitCowRadius {
			e.burst(w.Cows[i].Pos, 6, 400, core.ColorRed, '.')
			w.Cows = append(w.Cows[:i], w.Cows[i+1:]...)
			return true
		}
	}
	return false
}

// sweepMissilePairs removes every pair of missiles closer than the pair
// range. A missile takes part in at most one pair; boom is called once per
// removed pair at the midpoint.
func sweepMissilePairs(ms []Missile, boom func(core.Vec2)) []Missile {
	removed := make([]bool, len(ms))
	for i := range ms {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(ms); j++ {
			if removed[j] {
				continue
			}
			if ms[i].Pos.Dist(ms[j].Pos) < missilePairRange {
				removed[i], removed[j] = true, true
				if boom != nil {
					boom(ms[i].Pos.Add(ms[j].Pos).Scale(0.5))
				}
				break
			}
		}
	}
	kept := ms[:0]
	for i, m := range ms {
		if !removed[i] {
			kept = append(kept, m)
		}
	}
	return kept
}
