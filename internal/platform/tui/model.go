package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/registry"
	"github.com/vovakirdan/milkrun/internal/storage"
)

// Options carries what a game model needs besides the game itself.
type Options struct {
	Store  *storage.Store // nil disables score saving
	Pilot  string         // name written to the score table
	Ship   func() string  // equipped ship at game over; nil means unknown
	Logger *log.Logger

	// Embedded models report Back instead of ignoring it, so a session can
	// return to its menu.
	Embedded bool
}

// GameModel is the Bubble Tea model that drives one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	held       heldKeys
	frame      core.InputFrame
	pointer    core.Pointer
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		held:      newHeldKeys(),
		frame:     core.NewInputFrame(),
	}
}

// Init starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())
	case tea.MouseMsg:
		m.pointer = pointerFromMouse(msg, m.config.ScreenW, m.config.ScreenH, m.pointer)
		return m, nil
	case tea.WindowSizeMsg:
		// The game maps its own field onto whatever screen it gets, so a
		// resize never restarts the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.opts.Embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
	case isDirection(action):
		m.held.press(action, now)
	case action != core.ActionNone:
		m.frame.Set(action)
	}
	return m, nil
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.held.reset()
		m.frame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.held.apply(&m.frame, now)
	m.frame.Pointer = m.pointer
	result := m.game.Step(m.frame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun writes the finished run to the score table.
func (m GameModel) saveRun() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	ship := ""
	if m.opts.Ship != nil {
		ship = m.opts.Ship()
	}
	id, err := m.opts.Store.SaveRun(storage.RunRecord{
		GameID:         m.game.ID(),
		Pilot:          m.opts.Pilot,
		Ship:           ship,
		Score:          m.gameState.Score,
		Wave:           m.gameState.Wave,
		Milk:           m.gameState.Milk,
		CowsCollected:  m.gameState.CowsCollected,
		TanksDestroyed: m.gameState.TanksDestroyed,
	})
	if err != nil {
		m.opts.Logger.Error("saving run", "err", err)
		return
	}
	m.opts.Logger.Debug("run saved", "id", id, "score", m.gameState.Score, "wave", m.gameState.Wave)
}

// saveScreenshot writes the current screen as text under ~/.milkrun/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".milkrun", "screenshots")
	//nolint:errcheck // best effort
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // best effort
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the user asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewGameModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
