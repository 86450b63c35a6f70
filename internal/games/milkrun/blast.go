package milkrun

import "github.com/vovakirdan/milkrun/internal/core"

// AreaBlast is the expanding ring of an EMP or counter-attack.
type AreaBlast struct {
	Active    bool
	Center    core.Vec2
	Elapsed   float64
	Duration  float64
	MaxRadius float64
}

// Radius returns the current visual radius.
func (b AreaBlast) Radius() float64 {
	if !b.Active || b.Duration <= 0 {
		return 0
	}
	return b.MaxRadius * core.ClampF(b.Elapsed/b.Duration, 0, 1)
}

func (b *AreaBlast) start(center core.Vec2, ms, radius float64) {
	*b = AreaBlast{Active: true, Center: center, Duration: ms, MaxRadius: radius}
}

func (b *AreaBlast) tick(dt float64) {
	if !b.Active {
		return
	}
	b.Elapsed += dt
	if b.Elapsed >= b.Duration {
		b.Active = false
		b.Elapsed = 0
	}
}
