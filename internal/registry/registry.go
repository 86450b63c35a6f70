// Package registry maps game IDs to factories so the TUI, the SSH server
// and the CLI can build a game without importing it directly.
// Games register from init(); cmd/milkrun blank-imports them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/milkrun/internal/core"
)

// Game is what the platform drives: fixed-tick stepping on abstract input
// and drawing into a character screen. Implementations never touch the
// terminal themselves.
type Game interface {
	// ID is the stable identifier used for CLI flags and score rows.
	ID() string

	// Title is shown in menus and the HUD.
	Title() string

	// Reset starts a fresh run for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State summarizes the current run.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	first     string
)

// Register adds a factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
	if first == "" {
		first = id
	}
}

// List returns the registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Default returns the ID of the first registered game, or "" if none.
func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return first
}

// Create builds a game by ID. An empty ID selects Default.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	if id == "" {
		id = first
	}
	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the display title for id, or id itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
