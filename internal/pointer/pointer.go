// Package pointer defines the pointer event vocabulary the editor consumes.
// Hosts translate their native mouse events (tcell, browser bridges, test
// drivers) into these values.
package pointer

import (
	"time"

	"github.com/dshills/tablestorm/internal/geometry"
)

// Button represents a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonPrimary is the primary (left) button.
	ButtonPrimary
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonSecondary is the secondary (right) button.
	ButtonSecondary
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Action represents the type of pointer action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionMove indicates movement with no button held.
	ActionMove
	// ActionPress indicates a button press.
	ActionPress
	// ActionDrag indicates movement with a button held.
	ActionDrag
	// ActionRelease indicates a button release.
	ActionRelease
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionPress:
		return "press"
	case ActionDrag:
		return "drag"
	case ActionRelease:
		return "release"
	default:
		return "none"
	}
}

// Modifier is a bitmask of keyboard modifiers held during an event.
type Modifier uint8

const (
	// ModShift is the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl is the Control key.
	ModCtrl
	// ModAlt is the Alt key.
	ModAlt
	// ModMeta is the Meta/Command key.
	ModMeta
)

// HasShift reports whether Shift is held.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasCtrl reports whether Control is held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt reports whether Alt is held.
func (m Modifier) HasAlt() bool { return m&ModAlt != 0 }

// HasMeta reports whether Meta is held.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// Event represents a pointer input event in document pixels.
type Event struct {
	// Position is the pointer location.
	Position geometry.Point

	// Button is the button involved, if any.
	Button Button

	// Action is the type of pointer action.
	Action Action

	// Modifiers are keyboard modifiers held during the event.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// IsSecondaryPress reports whether the event is a secondary-button press
// (the context menu trigger).
func (e Event) IsSecondaryPress() bool {
	return e.Action == ActionPress && e.Button == ButtonSecondary
}
