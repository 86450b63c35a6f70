package milkrun

import (
	"math"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// GoldenChance returns the probability that a spawned cow is golden.
func GoldenChance(wave int) float64 {
	return goldenBase + math.Min(float64(wave)*goldenStep, goldenMaxBonus)
}

// HomingStrength returns the per-tick steering acceleration of missiles.
func HomingStrength(wave int, antiGravity bool) float64 {
	h := homingBase + math.Min(float64(wave-1)*homingStep, homingMaxBonus)
	if antiGravity {
		h *= antiGravHoming
	}
	return h
}

// MissileMaxSpeed returns the missile speed limit for a wave.
func MissileMaxSpeed(wave int, antiGravity bool) float64 {
	s := missileSpeedBase + math.Min(float64(wave-1)*missileSpeedStep, missileSpeedMax)
	if antiGravity {
		s *= antiGravSpeed
	}
	return s
}

// ShootDelay returns the firing interval of an enemy spawned in wave.
func ShootDelay(wave int, luckyJam bool) float64 {
	d := math.Max(enemyShootMin, enemyShootBase-float64(wave)*enemyShootStep)
	if luckyJam {
		d += luckyJamDelayMS
	}
	return d
}

// EnemySpeed returns the pursuit speed of an enemy spawned in wave.
func EnemySpeed(wave int) float64 {
	return enemyBaseSpeed + math.Min(float64(wave-1)*enemyWaveSpeed, enemyMaxBonus)
}

// MissileLife returns the lifetime of a fresh missile.
func MissileLife(luckyJam bool) float64 {
	if luckyJam {
		return missileLifeMS - luckyJamLifeCutMS
	}
	return missileLifeMS
}

// WaveDuration returns how long wave lasts before the next one starts.
func WaveDuration(c config.WaveConfig, wave int) float64 {
	return math.Max(c.BaseMS-float64(wave)*c.StepMS, c.MinMS)
}

// CowInterval returns the cow spawn interval.
func CowInterval(c config.SpawnConfig, wave int) float64 {
	cut := math.Min(float64(wave)*c.CowStepMS, c.CowMaxCutMS)
	return math.Max(c.CowBaseMS-cut, c.CowMinMS)
}

// EnemyInterval returns the enemy spawn interval. Wave 1 opens with a
// warmup during which no enemy spawns.
func EnemyInterval(c config.SpawnConfig, wave int, elapsed float64) float64 {
	if wave == 1 {
		if elapsed < c.EnemyWarmupMS {
			return math.Inf(1)
		}
		return c.EnemyFirstMS
	}
	return math.Max(c.EnemyBaseMS-float64(wave)*c.EnemyStepMS, c.EnemyMinMS)
}

// PowerupInterval returns the powerup spawn interval.
func PowerupInterval(c config.SpawnConfig, wave int) float64 {
	return math.Max(c.PowerupBaseMS-float64(wave)*c.PowerupStepMS, c.PowerupMinMS)
}

// InitialCows returns the size of the starting herd.
func InitialCows(c config.SpawnConfig, startWave int) int {
	if startWave <= 1 {
		return c.InitialCows
	}
	return c.InitialCowsLater
}

// jokerEligible decides whether the accumulated wave counter allows a
// joker spawn attempt. With the blessing any advance qualifies, so the 80%
// roll can never change the outcome and is skipped.
func jokerEligible(r Rand, counter int, blessing bool) bool {
	if blessing {
		return counter >= 1
	}
	if counter >= 3 {
		return true
	}
	return counter >= 2 && chance(r, 0.5)
}

// scheduleWaves advances the wave timer, moves to the next wave when due and
// runs the spawn timers.
func (e *Engine) scheduleWaves() {
	w := e.world
	dt := w.DeltaTime

	if e.cfg.Difficulty.Enabled {
		w.waveTimer += dt
		if w.waveTimer > WaveDuration(e.cfg.Waves, w.Wave) {
			w.waveTimer = 0
			e.advanceWave(w.Wave + 1)
		}
	}

	w.cowTimer += dt
	if w.cowTimer > CowInterval(e.cfg.Spawning, w.Wave) {
		w.cowTimer = 0
		e.spawnCow()
	}

	w.enemyTimer += dt
	if w.enemyTimer > EnemyInterval(e.cfg.Spawning, w.Wave, w.Elapsed) {
		w.enemyTimer = 0
		e.spawnEnemy()
	}

	w.powerupTimer += dt
	if w.powerupTimer > PowerupInterval(e.cfg.Spawning, w.Wave) {
		w.powerupTimer = 0
		e.spawnPowerup()
	}
}

// advanceWave moves to wave next, starts a background transition when the
// table entry changes and checks joker eligibility.
func (e *Engine) advanceWave(next int) {
	w := e.world
	prev := w.Wave
	w.Wave = next
	e.run.Wave = next
	e.emit(runstate.WaveChanged{Wave: next})
	e.log.Debug("wave advanced", "wave", next, "elapsed", int(w.Elapsed))

	e.startBackgroundTransition(e.cfg.Waves.BackgroundForWave(next))

	w.jokerWaves += next - prev
	if jokerEligible(e.rng, w.jokerWaves, e.ext.Flags.JokerBlessing) {
		w.jokerWaves = 0
		e.spawnJoker()
	}
}

func (e *Engine) startBackgroundTransition(target int) {
	bg := &e.world.Background
	if bg.Transitioning || target == bg.Current {
		return
	}
	bg.Transitioning = true
	bg.Old = bg.Current
	bg.New = target
	bg.ShowOld = true
	bg.FlickersLeft = e.cfg.Waves.FlickerCount
	bg.flickerTimer = 0
}

func (e *Engine) updateBackground() {
	bg := &e.world.Background
	if !bg.Transitioning {
		return
	}
	bg.flickerTimer += e.world.DeltaTime
	if bg.flickerTimer < e.cfg.Waves.FlickerIntervalMS {
		return
	}
	bg.flickerTimer = 0
	bg.ShowOld = !bg.ShowOld
	bg.FlickersLeft--
	if bg.FlickersLeft <= 0 {
		bg.Current = bg.New
		bg.Transitioning = false
		bg.ShowOld = false
	}
}
