package milkrun

import (
	"fmt"

	"github.com/vovakirdan/milkrun/internal/core"
)

// ControlMode selects which analog input drives the player besides keys.
type ControlMode int

const (
	ControlKeyboard ControlMode = iota
	ControlJoystick
	ControlTouch
)

// String returns the mode name used by the --control flag.
func (m ControlMode) String() string {
	switch m {
	case ControlKeyboard:
		return "keyboard"
	case ControlJoystick:
		return "joystick"
	case ControlTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// ParseControlMode converts a flag value into a ControlMode.
func ParseControlMode(s string) (ControlMode, error) {
	switch s {
	case "", "keyboard", "keys":
		return ControlKeyboard, nil
	case "joystick", "stick":
		return ControlJoystick, nil
	case "touch", "mouse":
		return ControlTouch, nil
	default:
		return ControlKeyboard, fmt.Errorf("milkrun: unknown control mode %q", s)
	}
}

// Keys holds the held direction keys.
type Keys struct {
	Up, Down, Left, Right bool
}

// Any reports whether any direction is held.
func (k Keys) Any() bool {
	return k.Up || k.Down || k.Left || k.Right
}

// Touch is an absolute pointer target in field pixels.
type Touch struct {
	Target core.Vec2
	Active bool
}

// Input is everything the player controls for one tick.
type Input struct {
	Keys  Keys
	Stick core.Vec2 // each axis in [-1, 1]
	Touch Touch
	Mode  ControlMode
}
