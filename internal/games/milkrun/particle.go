package milkrun

import "github.com/vovakirdan/milkrun/internal/core"

// burst scatters n particles around pos.
func (e *Engine) burst(pos core.Vec2, n int, lifeMS float64, color core.Color, glyph rune) {
	w := e.world
	for range n {
		if len(w.Particles) >= maxParticles {
			return
		}
		w.Particles = append(w.Particles, Particle{
			Pos:   pos,
			Vel:   core.V((e.rng.Float64()-0.5)*3, (e.rng.Float64()-0.5)*3),
			Life:  lifeMS,
			Max:   lifeMS,
			Color: color,
			Glyph: glyph,
		})
	}
}

// rainbowBurst is the joker pickup effect: particles cycle through colors.
func (e *Engine) rainbowBurst(pos core.Vec2, n int, lifeMS float64) {
	colors := []core.Color{core.ColorRed, core.ColorYellow, core.ColorGreen, core.ColorCyan, core.ColorBlue, core.ColorMagenta}
	for i := range n {
		e.burst(pos, 1, lifeMS, colors[i%len(colors)], '*')
	}
}

func (e *Engine) updateParticles() {
	w := e.world
	dt := w.DeltaTime
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += particleGravity
		kept = append(kept, p)
	}
	w.Particles = kept
}
