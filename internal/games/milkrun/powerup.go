package milkrun

import (
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// PowerupKind identifies a pickup effect.
type PowerupKind int

const (
	PowerupShield PowerupKind = iota
	PowerupDoubleScore
	PowerupGoldenCows
	PowerupExtraLife
	PowerupMilkstorm
	PowerupTimeFreeze
	PowerupEMP
	powerupKindCount
)

// PowerupKinds lists every kind in table order.
func PowerupKinds() []PowerupKind {
	kinds := make([]PowerupKind, 0, powerupKindCount)
	for k := PowerupShield; k < powerupKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the config key of the kind.
func (k PowerupKind) String() string {
	switch k {
	case PowerupShield:
		return "shield"
	case PowerupDoubleScore:
		return "double_score"
	case PowerupGoldenCows:
		return "golden_cows"
	case PowerupExtraLife:
		return "extra_life"
	case PowerupMilkstorm:
		return "milkstorm"
	case PowerupTimeFreeze:
		return "time_freeze"
	case PowerupEMP:
		return "emp"
	default:
		return "unknown"
	}
}

// Glyph returns the character the renderer uses for the kind.
func (k PowerupKind) Glyph() rune {
	switch k {
	case PowerupShield:
		return 'S'
	case PowerupDoubleScore:
		return '2'
	case PowerupGoldenCows:
		return 'G'
	case PowerupExtraLife:
		return '♥'
	case PowerupMilkstorm:
		return '@'
	case PowerupTimeFreeze:
		return 'F'
	case PowerupEMP:
		return 'E'
	default:
		return '?'
	}
}

// Color returns the render color of the kind.
func (k PowerupKind) Color() core.Color {
	switch k {
	case PowerupShield:
		return core.ColorCyan
	case PowerupDoubleScore:
		return core.ColorYellow
	case PowerupGoldenCows:
		return core.ColorGold
	case PowerupExtraLife:
		return core.ColorRed
	case PowerupMilkstorm:
		return core.ColorWhite
	case PowerupTimeFreeze:
		return core.ColorBlue
	case PowerupEMP:
		return core.ColorMagenta
	default:
		return core.ColorDefault
	}
}

// WeightTable draws powerup kinds by cumulative weight.
type WeightTable struct {
	kinds []PowerupKind
	cum   []int
	total int
}

// NewWeightTable builds a table from config weights keyed by kind name.
// Unknown keys and non-positive weights are ignored.
func NewWeightTable(weights map[string]int) WeightTable {
	var t WeightTable
	for _, k := range PowerupKinds() {
		wgt := weights[k.String()]
		if wgt <= 0 {
			continue
		}
		t.total += wgt
		t.kinds = append(t.kinds, k)
		t.cum = append(t.cum, t.total)
	}
	return t
}

// Draw picks a kind. An empty table always yields a shield.
func (t WeightTable) Draw(r Rand) PowerupKind {
	if t.total == 0 {
		return PowerupShield
	}
	roll := r.Intn(t.total)
	for i, c := range t.cum {
		if roll < c {
			return t.kinds[i]
		}
	}
	return t.kinds[len(t.kinds)-1]
}

// Probability returns the chance that Draw yields k.
func (t WeightTable) Probability(k PowerupKind) float64 {
	if t.total == 0 {
		return 0
	}
	prev := 0
	for i, c := range t.cum {
		if t.kinds[i] == k {
			return float64(c-prev) / float64(t.total)
		}
		prev = c
	}
	return 0
}

func (e *Engine) spawnPowerup() {
	w := e.world
	b := w.Bounds
	w.Powerups = append(w.Powerups, Powerup{
		ID: w.newID(),
		Pos: core.V(
			between(e.rng, powerupMargin, b.Width()-powerupMargin),
			between(e.rng, powerupMargin, b.Height()-powerupMargin),
		),
		Kind: e.powerups.Draw(e.rng),
		Life: e.cfg.Powerups.LifeMS,
	})
}

func (e *Engine) updatePowerups() {
	w := e.world
	kept := w.Powerups[:0]
	for _, pu := range w.Powerups {
		pu.Life -= w.DeltaTime
		if pu.Life <= 0 {
			continue
		}
		if pu.Pos.Dist(w.Player.Pos) < w.Player.BeamSize/2 {
			e.applyPowerup(pu)
			continue
		}
		kept = append(kept, pu)
	}
	w.Powerups = kept
}

func (e *Engine) applyPowerup(pu Powerup) {
	w := e.world
	p := &w.Player
	c := e.cfg.Powerups
	lo := e.ext.Loadout.Resolved()

	switch pu.Kind {
	case PowerupShield:
		p.Shield.Start(c.ShieldMS + lo.ShieldDurationBonus*1000)
	case PowerupDoubleScore:
		w.DoubleScore.Start(c.DoubleScoreMS)
	case PowerupGoldenCows:
		w.GoldenBonus += c.GoldenCows
	case PowerupExtraLife:
		if e.run.Lives < e.cfg.Player.MaxLives {
			e.run.Lives++
			e.emit(runstate.LivesChanged{Lives: e.run.Lives})
		}
	case PowerupMilkstorm:
		p.Milkstorm.Start(c.MilkstormMS)
	case PowerupTimeFreeze:
		w.TimeFreeze.Start(c.TimeFreezeMS)
	case PowerupEMP:
		count := e.destroyAllHostiles(p.Pos, -1)
		if count > 0 {
			e.addScore(tankPoints * count)
			e.addTanks(count)
		}
		w.EMP.start(p.Pos, empMS, empRadius)
	}
	e.emit(runstate.PowerupCollected{Kind: pu.Kind.String()})
	e.burst(pu.Pos, 6, 400, pu.Kind.Color(), '+')
}
