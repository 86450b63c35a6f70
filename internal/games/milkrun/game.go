package milkrun

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/registry"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// ID is the registry and score-table identifier of the game.
const ID = "milkrun"

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// RunProvider connects a run to state kept outside the engine.
// StartRun is called on every reset and may consume one-shot items;
// FinishRun is called once when the run ends.
type RunProvider interface {
	StartRun() (runstate.Source, runstate.Sink)
	FinishRun(final runstate.State)
}

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	controlMode     ControlMode
	logger          = log.New(io.Discard)
	defaultProvider RunProvider
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		logger.Warn("ignoring difficulty preset", "err", err)
		return
	}
	difficultyPreset = p
}

// SetControlMode selects the analog control used by new games.
func SetControlMode(m ControlMode) {
	controlMode = m
}

// SetLogger sets the logger used by new games. Nil restores the discard logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetRunProvider sets the provider attached to games created afterwards.
func SetRunProvider(p RunProvider) {
	defaultProvider = p
}

// Game adapts the engine to the platform's registry.Game interface.
type Game struct {
	engine   *Engine
	cfg      config.MilkrunConfig
	runtime  core.RuntimeConfig
	provider RunProvider
	mode     ControlMode
	view     viewport

	paused   bool
	finished bool
}

// New creates a Milk Run game using the package defaults.
func New() *Game {
	return &Game{provider: defaultProvider, mode: controlMode}
}

// SetProvider attaches a provider to this game. It takes effect on the next Reset.
func (g *Game) SetProvider(p RunProvider) {
	g.provider = p
}

// SetMode changes the control mode.
func (g *Game) SetMode(m ControlMode) {
	g.mode = m
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Milk Run"
}

// Reset loads configuration and starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	g.runtime = rc

	cfg, err := config.LoadMilkrun(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultMilkrunConfig()
	}
	config.ApplyMilkrunPreset(&cfg, difficultyPreset)
	g.cfg = cfg

	var (
		src  runstate.Source
		sink runstate.Sink
	)
	if g.provider != nil {
		src, sink = g.provider.StartRun()
	}
	if g.engine != nil {
		g.engine.Close()
	}
	g.engine = NewEngine(Options{
		Config: cfg,
		Source: src,
		Sink:   sink,
		Seed:   rc.Seed,
		Logger: logger,
	})
	g.view = newViewport(rc.ScreenW, rc.ScreenH, cfg.Field.Width, cfg.Field.Height)
	g.paused = false
	g.finished = false
}

// Step advances the simulation by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.engine.State().GameOver {
		g.paused = !g.paused
	}
	if !g.paused {
		g.engine.Tick(g.translate(in), time.Second/time.Duration(g.runtime.TickRate))
		g.finishOnce()
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) finishOnce() {
	st := g.engine.State()
	if !st.GameOver || g.finished {
		return
	}
	g.finished = true
	if g.provider != nil {
		g.provider.FinishRun(st)
	}
}

// translate converts a platform frame into engine input.
func (g *Game) translate(in core.InputFrame) Input {
	out := Input{
		Keys: Keys{
			Up:    in.Has(core.ActionUp),
			Down:  in.Has(core.ActionDown),
			Left:  in.Has(core.ActionLeft),
			Right: in.Has(core.ActionRight),
		},
		Stick: in.Stick,
		Mode:  g.mode,
	}
	if in.Pointer.Active {
		out.Touch = Touch{
			Target: g.view.toField(in.Pointer.X, in.Pointer.Y),
			Active: true,
		}
	}
	return out
}

// Render draws the current world into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() != g.view.screenW || dst.Height() != g.view.screenH {
		g.view = newViewport(dst.Width(), dst.Height(), g.cfg.Field.Width, g.cfg.Field.Height)
	}
	snap := g.engine.Snapshot()
	drawWorld(dst, g.view, &snap)
	drawHUD(dst, &snap, g.cfg.Player.StreakForCounter)
	switch {
	case snap.Run.GameOver:
		drawBanner(dst, "GAME OVER", fmt.Sprintf("Score %d  Milk %d  R restart  Q quit", snap.Run.Score, snap.Run.Milk))
	case g.paused:
		drawBanner(dst, "PAUSED", "P resume")
	}
}

// State returns the platform view of the run.
func (g *Game) State() core.GameState {
	st := g.engine.State()
	return core.GameState{
		Score:          st.Score,
		Milk:           st.Milk,
		Lives:          st.Lives,
		Wave:           st.Wave,
		CowsCollected:  st.CowsCollected,
		TanksDestroyed: st.TanksDestroyed,
		GameOver:       st.GameOver,
		Paused:         g.paused,
	}
}

// Engine exposes the underlying engine, mainly for tests and the headless simulator.
func (g *Game) Engine() *Engine {
	return g.engine
}
