// Package hover implements the per-table quick-action buttons that appear
// while the pointer is over a table: append-column at the right edge,
// append-row at the bottom edge, and delete-table at the top-right corner.
// Leaving the table hides them after a short delay so the pointer can travel
// onto a button without the button vanishing underneath it.
package hover

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/floating"
	"github.com/dshills/tablestorm/internal/geometry"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/mutate"
	"github.com/dshills/tablestorm/internal/sched"
)

// Action identifies a hover button.
type Action uint8

const (
	// ActionNone is the zero action.
	ActionNone Action = iota
	// ActionAddColumn appends a column at the table's right edge.
	ActionAddColumn
	// ActionAddRow appends a row at the table's bottom edge.
	ActionAddRow
	// ActionDeleteTable removes the whole table.
	ActionDeleteTable
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionAddColumn:
		return "add-column"
	case ActionAddRow:
		return "add-row"
	case ActionDeleteTable:
		return "delete-table"
	default:
		return "none"
	}
}

// Button square edge and the gap between a button and the table edge.
const (
	buttonSize = 18
	buttonGap  = 2
)

// Buttons manages the hover affordances for the table currently under the
// pointer. At most one table's buttons are visible.
type Buttons struct {
	cfg      config.Config
	floats   *floating.Manager
	measurer geometry.Measurer
	mut      *mutate.Mutator
	sched    sched.Scheduler
	log      *logging.Logger

	table *html.Node
	els   map[Action]*floating.Element
	hide  sched.Handle
}

// New creates the hover button manager.
func New(cfg config.Config, floats *floating.Manager, m geometry.Measurer, mut *mutate.Mutator, scheduler sched.Scheduler, log *logging.Logger) *Buttons {
	if log == nil {
		log = logging.Nop()
	}
	return &Buttons{
		cfg:      cfg,
		floats:   floats,
		measurer: m,
		mut:      mut,
		sched:    scheduler,
		log:      log,
	}
}

// Table returns the table whose buttons are showing, or nil.
func (b *Buttons) Table() *html.Node {
	return b.table
}

// Visible reports whether any buttons are showing.
func (b *Buttons) Visible() bool {
	return b.table != nil
}

// EnterTable shows the buttons for a table. Re-entering the current table
// cancels any pending hide and refreshes positions.
func (b *Buttons) EnterTable(table *html.Node) {
	if table == b.table {
		b.cancelHide()
		b.Reposition()
		return
	}
	b.hideNow()

	rect, ok := b.measurer.TableRect(table)
	if !ok {
		return
	}
	b.table = table
	b.els = map[Action]*floating.Element{}
	for _, act := range []Action{ActionAddColumn, ActionAddRow, ActionDeleteTable} {
		el := b.floats.Add(floating.KindButton, "ts-table-button", buttonRect(act, rect))
		dom.SetAttr(el.Node(), "data-action", act.String())
		b.els[act] = el
	}
	b.log.Debugf("hover buttons shown")
}

// Leave schedules the buttons to hide after the configured delay.
func (b *Buttons) Leave() {
	if b.table == nil {
		return
	}
	b.cancelHide()
	b.hide = b.sched.After(b.cfg.HoverHideDelay, b.hideNow)
}

// CancelHide keeps the buttons up, typically because the pointer reached one
// of them.
func (b *Buttons) CancelHide() {
	b.cancelHide()
}

// Reposition recomputes button positions from the table's current bounding
// box. A table that can no longer be measured hides immediately.
func (b *Buttons) Reposition() {
	if b.table == nil {
		return
	}
	rect, ok := b.measurer.TableRect(b.table)
	if !ok {
		b.hideNow()
		return
	}
	for act, el := range b.els {
		b.floats.Move(el, buttonRect(act, rect))
	}
}

// ButtonAt returns the action of the button under the point.
func (b *Buttons) ButtonAt(p geometry.Point) (Action, bool) {
	el, ok := b.floats.At(p)
	if !ok {
		return ActionNone, false
	}
	for act, own := range b.els {
		if own.ID() == el.ID() {
			return act, true
		}
	}
	return ActionNone, false
}

// Press performs the button action under the point. Returns true when a
// button consumed the press.
func (b *Buttons) Press(p geometry.Point) bool {
	act, ok := b.ButtonAt(p)
	if !ok {
		return false
	}
	table := b.table
	b.log.Debugf("hover button pressed: %s", act)

	switch act {
	case ActionAddColumn:
		if t, ok := htmltable.FromNode(table); ok {
			b.mut.InsertColumn(table, t.VisualColumns()-1, mutate.After)
			b.Reposition()
		}
	case ActionAddRow:
		if t, ok := htmltable.FromNode(table); ok {
			b.mut.InsertRow(table, len(t.Rows())-1, mutate.After)
			b.Reposition()
		}
	case ActionDeleteTable:
		b.mut.DeleteTable(table)
		b.hideNow()
	}
	return true
}

// Hide removes the buttons immediately.
func (b *Buttons) Hide() {
	b.hideNow()
}

func (b *Buttons) hideNow() {
	b.cancelHide()
	for _, el := range b.els {
		b.floats.Remove(el)
	}
	b.els = nil
	b.table = nil
}

func (b *Buttons) cancelHide() {
	if b.hide != nil {
		b.hide.Cancel()
		b.hide = nil
	}
}

// buttonRect places a button relative to the table bounding box: add-column
// centered on the right edge, add-row centered on the bottom edge,
// delete-table above the top-right corner.
func buttonRect(act Action, r geometry.Rect) geometry.Rect {
	rect := geometry.Rect{Width: buttonSize, Height: buttonSize}
	switch act {
	case ActionAddColumn:
		rect.X = r.Right() + buttonGap
		rect.Y = r.Y + (r.Height-buttonSize)/2
	case ActionAddRow:
		rect.X = r.X + (r.Width-buttonSize)/2
		rect.Y = r.Bottom() + buttonGap
	case ActionDeleteTable:
		rect.X = r.Right() - buttonSize
		rect.Y = r.Y - buttonSize - buttonGap
	}
	return rect
}
