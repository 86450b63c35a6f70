package milkrun

import (
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// hitPlayer resolves a missile reaching the player and reports whether the
// missile is used up. An invincible player lets the missile fly on.
func (e *Engine) hitPlayer(m Missile) bool {
	p := &e.world.Player
	if p.Shield.Active() {
		p.Shield.Clear()
		e.emit(runstate.ShieldAbsorbed{})
		e.burst(m.Pos, 6, 400, core.ColorCyan, '+')
		return true
	}
	if p.Invincible.Active() {
		return false
	}
	e.damagePlayer()
	return true
}

// damagePlayer takes one life. A lethal hit is turned into a revive when the
// ship allows it and the run has not revived yet.
func (e *Engine) damagePlayer() {
	if e.run.GameOver {
		return
	}
	w := e.world
	p := &w.Player
	lo := e.ext.Loadout.Resolved()
	lives := e.run.Lives - 1

	if lo.ReviveOnDeath && !e.run.ReviveUsed && lives <= 0 {
		lost := e.run.Milk / 2
		e.run.Lives = 1
		e.run.Milk -= lost
		e.run.ReviveUsed = true
		e.emit(runstate.LivesChanged{Lives: 1})
		e.emit(runstate.MilkChanged{Milk: e.run.Milk, Delta: -lost})
		e.emit(runstate.Revived{MilkLost: lost})
		e.resetStreak()
		p.Invincible.Start(e.cfg.Player.ReviveInvincibleMS)
		e.burst(p.Pos, 20, 900, core.ColorGold, '*')
		e.log.Debug("revived", "milk_lost", lost)
		return
	}

	if lives < 0 {
		lives = 0
	}
	e.run.Lives = lives
	e.emit(runstate.PlayerHit{})
	e.emit(runstate.LivesChanged{Lives: lives})
	e.resetStreak()
	p.Invincible.Start(e.cfg.Player.InvincibleMS + lo.InvincibilityDurationBonus*1000)
	e.burst(p.Pos, 12, 600, core.ColorRed, '*')

	if lives == 0 {
		e.run.GameOver = true
		e.emit(runstate.GameOver{Score: e.run.Score, Wave: w.Wave})
		e.log.Debug("game over", "score", e.run.Score, "wave", w.Wave, "milk", e.run.Milk)
	}
}
