package milkrun

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// Options configures a new Engine. Zero fields get working defaults.
type Options struct {
	Config config.MilkrunConfig
	Source runstate.Source
	Sink   runstate.Sink
	Rand   Rand
	Logger *log.Logger
	Seed   int64 // used when Rand is nil
}

// Engine advances one run of the simulation.
// It is not safe for concurrent use; one goroutine drives Tick.
type Engine struct {
	cfg  config.MilkrunConfig
	rng  Rand
	log  *log.Logger
	src  runstate.Source
	sink runstate.Sink

	powerups WeightTable

	world  *World
	ext    runstate.External
	run    runstate.State
	outbox []runstate.Event
}

// NewEngine creates an engine and starts a fresh run.
func NewEngine(opts Options) *Engine {
	cfg := opts.Config
	if cfg.Field.Width <= 0 || cfg.Field.Height <= 0 {
		cfg = config.DefaultMilkrunConfig()
	}
	e := &Engine{
		cfg:  cfg,
		rng:  opts.Rand,
		log:  opts.Logger,
		src:  opts.Source,
		sink: opts.Sink,
	}
	e.powerups = NewWeightTable(cfg.Powerups.Weights)
	if e.rng == nil {
		e.rng = NewSimpleRNG(opts.Seed)
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	if e.src == nil {
		e.src = runstate.Static{}
	}
	e.Reset()
	return e
}

// Reset discards the current run and starts a new one from the current
// external snapshot. The baseline counters are published immediately.
func (e *Engine) Reset() {
	e.ext = e.src.External()
	lo := e.ext.Loadout.Resolved()

	startWave := e.cfg.Difficulty.StartWave
	if startWave < 1 {
		startWave = 1
	}
	lives := lo.InitialLives(e.ext.Flags) + e.cfg.Difficulty.ExtraLives
	if lives < 1 {
		lives = 1
	}

	bounds := core.NewBounds(e.cfg.Field.Width, e.cfg.Field.Height)
	e.world = &World{
		Bounds: bounds,
		Player: Player{
			Pos:      core.V(bounds.Width()/2, bounds.Height()*0.75),
			Width:    lo.BasePlayerWidth,
			Height:   lo.BasePlayerHeight,
			Speed:    lo.Speed(),
			BeamSize: lo.TractorBeamSize,
		},
		Wave:       startWave,
		Background: BackgroundState{Current: e.cfg.Waves.BackgroundForWave(startWave)},
	}
	e.run = runstate.State{Lives: lives, Wave: startWave}
	e.outbox = e.outbox[:0]

	for range InitialCows(e.cfg.Spawning, startWave) {
		e.spawnCow()
	}

	e.emit(runstate.ScoreChanged{})
	e.emit(runstate.MilkChanged{})
	e.emit(runstate.LivesChanged{Lives: lives})
	e.emit(runstate.WaveChanged{Wave: startWave})
	e.emit(runstate.StreakChanged{})
	e.flush()

	e.log.Debug("run started", "wave", startWave, "lives", lives, "skin", lo.Skin)
}

// Tick advances the world by one frame. elapsed is the host time since the
// previous tick; it is clamped to [0, 100] ms. The events produced by the
// tick are published to the sink and returned. After game over Tick is a
// no-op returning nil.
func (e *Engine) Tick(in Input, elapsed time.Duration) []runstate.Event {
	if e.run.GameOver {
		return nil
	}
	w := e.world
	w.DeltaTime = ClampDelta(elapsed)
	w.Elapsed += w.DeltaTime
	e.ext = e.src.External()

	e.scheduleWaves()
	e.updatePlayer(in)
	e.updateCows()
	e.updateJoker()
	if !w.TimeFreeze.Active() {
		e.updateEnemies()
		e.updateMissiles()
	}
	// A lethal hit ends the run; nothing after it may change the counters.
	if !e.run.GameOver {
		e.updatePowerups()
	}
	e.updateTransients()

	return e.flush()
}

// ClampDelta converts host elapsed time to a simulation step in ms.
func ClampDelta(elapsed time.Duration) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	return core.ClampF(ms, 0, maxDeltaMS)
}

// State returns the engine's working copy of the run counters.
func (e *Engine) State() runstate.State {
	return e.run
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.MilkrunConfig {
	return e.cfg
}

// Close tears the world down. The engine must be Reset before reuse.
func (e *Engine) Close() {
	e.world.Teardown()
}

func (e *Engine) emit(ev runstate.Event) {
	e.outbox = append(e.outbox, ev)
}

func (e *Engine) flush() []runstate.Event {
	if len(e.outbox) == 0 {
		return nil
	}
	out := make([]runstate.Event, len(e.outbox))
	copy(out, e.outbox)
	e.outbox = e.outbox[:0]
	if e.sink != nil {
		e.sink.Publish(out)
	}
	return out
}

func (e *Engine) scoreMultiplier() int {
	if e.world.DoubleScore.Active() {
		return 2
	}
	return 1
}

func (e *Engine) addScore(base int) {
	delta := base * e.scoreMultiplier()
	e.run.Score += delta
	e.emit(runstate.ScoreChanged{Score: e.run.Score, Delta: delta})
}

// addMilk applies the ship's milk bonus (rounded down) and the double milk flag.
func (e *Engine) addMilk(base int) {
	m := int(math.Floor(float64(base) * e.ext.Loadout.Resolved().MilkBonus))
	if e.ext.Flags.DoubleMilk {
		m *= 2
	}
	e.run.Milk += m
	e.emit(runstate.MilkChanged{Milk: e.run.Milk, Delta: m})
}

func (e *Engine) addTanks(n int) {
	if n <= 0 {
		return
	}
	e.run.TanksDestroyed += n
	e.emit(runstate.TanksDestroyed{Count: n, Total: e.run.TanksDestroyed})
}

func (e *Engine) bumpStreak() {
	e.run.Streak++
	e.emit(runstate.StreakChanged{Streak: e.run.Streak})
	if e.run.Streak >= e.cfg.Player.StreakForCounter && !e.run.CounterAttackReady {
		e.run.CounterAttackReady = true
		e.emit(runstate.CounterAttackReady{})
	}
}

func (e *Engine) resetStreak() {
	if e.run.Streak != 0 {
		e.run.Streak = 0
		e.emit(runstate.StreakChanged{})
	}
	if e.run.CounterAttackReady {
		e.run.CounterAttackReady = false
		e.emit(runstate.CounterAttackReset{})
	}
}

func (e *Engine) updateTransients() {
	dt := e.world.DeltaTime
	e.world.EMP.tick(dt)
	e.world.Counter.tick(dt)
	e.updateBackground()
	e.updateParticles()
}
