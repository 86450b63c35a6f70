package milkrun

import "github.com/vovakirdan/milkrun/internal/core"

// spawnEnemy adds a turret outside the field. Side turrets enter in the
// upper 60% of the field.
func (e *Engine) spawnEnemy() {
	w := e.world
	b := w.Bounds
	var pos core.Vec2
	switch e.rng.Intn(4) {
	case 0:
		pos = core.V(-enemySpawnMargin, e.rng.Float64()*b.Height()*0.6)
	case 1:
		pos = core.V(b.Width()+enemySpawnMargin, e.rng.Float64()*b.Height()*0.6)
	case 2:
		pos = core.V(e.rng.Float64()*b.Width(), -enemySpawnMargin)
	default:
		pos = core.V(e.rng.Float64()*b.Width(), b.Height()+enemySpawnMargin)
	}
	w.Enemies = append(w.Enemies, Enemy{
		ID:         w.newID(),
		Pos:        pos,
		Speed:      EnemySpeed(w.Wave),
		ShootDelay: ShootDelay(w.Wave, e.ext.Flags.LuckyJam),
	})
}

func (e *Engine) updateEnemies() {
	w := e.world
	dt := w.DeltaTime
	player := w.Player.Pos
	storm := w.Player.Milkstorm.Active()

	kept := w.Enemies[:0]
	destroyed := 0
	for _, en := range w.Enemies {
		dir, _ := en.Pos.Toward(player)
		en.Pos = en.Pos.Add(dir.Scale(en.Speed))

		en.ShootTimer += dt
		if en.ShootTimer > en.ShootDelay {
			en.ShootTimer = 0
			e.fireMissile(en)
		}

		if storm {
			pull, dist := en.Pos.Toward(player)
			if dist < vortexRadius {
				en.Pos = en.Pos.Add(pull.Scale(vortexEnemyPull * dt * 0.1))
				if en.Pos.Dist(player) < vortexEnemyKill {
					e.addScore(tankPoints)
					destroyed++
					e.burst(en.Pos, 8, 500, core.ColorOrange, '*')
					continue
				}
			}
		}
		kept = append(kept, en)
	}
	w.Enemies = kept
	e.addTanks(destroyed)
}

func (e *Engine) fireMissile(en Enemy) {
	w := e.world
	w.Missiles = append(w.Missiles, Missile{
		ID:       w.newID(),
		Pos:      en.Pos,
		Life:     MissileLife(e.ext.Flags.LuckyJam),
		SpawnAt:  w.Elapsed,
		SourceID: en.ID,
	})
}

// destroyAllHostiles removes every enemy and missile within radius of center
// (all of them when radius is negative) and returns the enemies destroyed.
func (e *Engine) destroyAllHostiles(center core.Vec2, radius float64) int {
	w := e.world
	in := func(p core.Vec2) bool { return radius < 0 || p.Dist(center) < radius }

	enemies := w.Enemies[:0]
	count := 0
	for _, en := range w.Enemies {
		if in(en.Pos) {
			count++
			e.burst(en.Pos, 6, 500, core.ColorOrange, '*')
			continue
		}
		enemies = append(enemies, en)
	}
	w.Enemies = enemies

	missiles := w.Missiles[:0]
	for _, m := range w.Missiles {
		if in(m.Pos) {
			continue
		}
		missiles = append(missiles, m)
	}
	w.Missiles = missiles
	return count
}
