package tablestorm

import (
	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/geometry"
	"github.com/dshills/tablestorm/internal/host"
	"github.com/dshills/tablestorm/internal/mutate"
	"github.com/dshills/tablestorm/internal/pointer"
	"github.com/dshills/tablestorm/internal/sched"
)

// Aliases exposing the internal vocabulary hosts need to integrate: the
// adapter boundary, pointer events, geometry, configuration, scheduling, and
// structural placement.

// Adapter bridges the editor to a concrete host. See internal/host.
type Adapter = host.Adapter

// CommandFunc handles a named editor command.
type CommandFunc = host.CommandFunc

// Config holds editor tuning values.
type Config = config.Config

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return config.DefaultConfig()
}

// LoadConfig reads a TOML configuration file, returning defaults when the
// file does not exist.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// Point is a document position.
type Point = geometry.Point

// Rect is an axis-aligned rectangle in document coordinates.
type Rect = geometry.Rect

// Measurer reports live bounding boxes for table elements.
type Measurer = geometry.Measurer

// GridMeasurer is the default declared-sizes measurer.
type GridMeasurer = geometry.GridMeasurer

// NewGridMeasurer creates a GridMeasurer with the given size floors.
func NewGridMeasurer(minColWidth, minRowHeight int) *GridMeasurer {
	return geometry.NewGridMeasurer(minColWidth, minRowHeight)
}

// PointerEvent is a host pointer event.
type PointerEvent = pointer.Event

// PointerButton identifies a pointer button.
type PointerButton = pointer.Button

// PointerAction identifies the type of pointer action.
type PointerAction = pointer.Action

// PointerModifier is a bitmask of held keyboard modifiers.
type PointerModifier = pointer.Modifier

// Pointer buttons.
const (
	ButtonNone      = pointer.ButtonNone
	ButtonPrimary   = pointer.ButtonPrimary
	ButtonMiddle    = pointer.ButtonMiddle
	ButtonSecondary = pointer.ButtonSecondary
)

// Pointer actions.
const (
	ActionMove    = pointer.ActionMove
	ActionPress   = pointer.ActionPress
	ActionDrag    = pointer.ActionDrag
	ActionRelease = pointer.ActionRelease
)

// Pointer modifiers.
const (
	ModShift = pointer.ModShift
	ModCtrl  = pointer.ModCtrl
	ModAlt   = pointer.ModAlt
	ModMeta  = pointer.ModMeta
)

// Scheduler schedules deferred and delayed callbacks.
type Scheduler = sched.Scheduler

// NewTimerScheduler creates the default timer-backed scheduler.
func NewTimerScheduler(opts ...sched.Option) Scheduler {
	return sched.NewTimerScheduler(opts...)
}

// Placement selects which side of an index an insertion lands on.
type Placement = mutate.Placement

// Placements.
const (
	Before = mutate.Before
	After  = mutate.After
)
