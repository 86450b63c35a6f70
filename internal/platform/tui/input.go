package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/milkrun/internal/core"
)

// holdWindow is how long one key press keeps a direction held.
// Terminals send presses and auto-repeats but never releases, so a held
// arrow key shows up as a stream of presses closer together than this.
const holdWindow = 220 * time.Millisecond

// heldKeys turns key presses into held directions.
type heldKeys struct {
	until map[core.Action]time.Time
}

func newHeldKeys() heldKeys {
	return heldKeys{until: make(map[core.Action]time.Time, 4)}
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// press holds a direction until now+holdWindow and releases its opposite.
func (h heldKeys) press(a core.Action, now time.Time) {
	h.until[a] = now.Add(holdWindow)
	delete(h.until, opposite[a])
}

// reset releases everything.
func (h heldKeys) reset() {
	for k := range h.until {
		delete(h.until, k)
	}
}

// apply marks the held directions on frame and sets the virtual stick from
// them. Expired holds are dropped.
func (h heldKeys) apply(frame *core.InputFrame, now time.Time) {
	var stick core.Vec2
	for a, t := range h.until {
		if !now.Before(t) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
		switch a {
		case core.ActionUp:
			stick.Y--
		case core.ActionDown:
			stick.Y++
		case core.ActionLeft:
			stick.X--
		case core.ActionRight:
			stick.X++
		}
	}
	frame.Stick = stick.Normalize()
}

// pointerFromMouse converts a mouse event into a normalized drag target.
// Only the left button drags; release ends the drag.
func pointerFromMouse(msg tea.MouseMsg, width, height int, prev core.Pointer) core.Pointer {
	if width <= 0 || height <= 0 {
		return core.Pointer{}
	}
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return prev
	}

	p := core.Pointer{
		X: (float64(msg.X) + 0.5) / float64(width),
		Y: (float64(msg.Y) + 0.5) / float64(height),
	}
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		p.Active = true
	case tea.MouseActionRelease:
		p.Active = false
	}
	return p
}
