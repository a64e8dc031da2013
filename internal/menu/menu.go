// Package menu implements the table context menu: a floating panel of
// structural edit entries opened on secondary click inside a table. One menu
// is open at most; opening arms its dismiss handling one scheduler tick
// later so the opening press cannot dismiss it.
package menu

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/floating"
	"github.com/dshills/tablestorm/internal/geometry"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/mutate"
	"github.com/dshills/tablestorm/internal/sched"
)

// Fixed panel geometry. Hosts style the real appearance via the ts-* classes;
// these sizes exist so hit testing works without a layout engine.
const (
	panelWidth    = 180
	itemHeight    = 24
	dividerHeight = 9
	panelPad      = 4
)

// Item is one context menu entry.
type Item struct {
	ID       string
	Label    string
	Disabled bool
	Divider  bool

	action func()
}

// Extra is a script-contributed menu entry dispatched through a registered
// host command.
type Extra struct {
	Label   string
	Command string
}

// CommandRunner dispatches a named command with arguments. Extras use it.
type CommandRunner func(name string, args map[string]any)

type entry struct {
	item Item
	el   *floating.Element
}

// Menu owns the single context menu instance for one editor.
type Menu struct {
	floats *floating.Manager
	mut    *mutate.Mutator
	sched  sched.Scheduler
	run    CommandRunner
	log    *logging.Logger

	open    bool
	armed   bool
	arm     sched.Handle
	panel   *floating.Element
	entries []*entry
}

// New creates a menu. run may be nil when no script commands exist.
func New(floats *floating.Manager, mut *mutate.Mutator, scheduler sched.Scheduler, run CommandRunner, log *logging.Logger) *Menu {
	if log == nil {
		log = logging.Nop()
	}
	return &Menu{
		floats: floats,
		mut:    mut,
		sched:  scheduler,
		run:    run,
		log:    log,
	}
}

// IsOpen reports whether the menu is showing.
func (m *Menu) IsOpen() bool {
	return m.open
}

// Open shows the menu anchored at the pointer position, built for the table
// and cell under it. Any menu already open is replaced.
func (m *Menu) Open(table, cell *html.Node, at geometry.Point, extras []Extra) {
	m.Close()

	t, ok := htmltable.FromNode(table)
	if !ok {
		return
	}
	col := htmltable.CellStartColumn(cell)
	_, row, ok := t.CellRow(cell)
	if !ok {
		row = 0
	}
	items := m.build(t, col, row, extras)

	height := 2 * panelPad
	for _, it := range items {
		if it.Divider {
			height += dividerHeight
		} else {
			height += itemHeight
		}
	}
	m.panel = m.floats.Add(floating.KindMenu, "ts-context-menu", geometry.Rect{
		X:      at.X,
		Y:      at.Y,
		Width:  panelWidth,
		Height: height,
	})

	y := at.Y + panelPad
	for _, it := range items {
		h := itemHeight
		class := "ts-context-menu-item"
		if it.Divider {
			h = dividerHeight
			class = "ts-context-menu-divider"
		}
		el := m.floats.Add(floating.KindMenuItem, class, geometry.Rect{
			X:      at.X,
			Y:      y,
			Width:  panelWidth,
			Height: h,
		})
		if !it.Divider {
			el.Node().AppendChild(dom.NewText(it.Label))
		}
		if it.Disabled {
			dom.SetAttr(el.Node(), "data-disabled", "true")
		}
		m.entries = append(m.entries, &entry{item: it, el: el})
		y += h
	}

	m.open = true
	m.armed = false
	m.arm = m.sched.Defer(func() { m.armed = true })
	m.log.Debugf("menu opened at (%d,%d) col=%d row=%d", at.X, at.Y, col, row)
}

// build assembles the entry list: the six structural edits, a divider, the
// whole-table delete, then any script extras.
func (m *Menu) build(t *htmltable.Table, col, row int, extras []Extra) []Item {
	table := t.Node()
	oneCol := t.VisualColumns() <= 1
	oneRow := len(t.Rows()) <= 1

	items := []Item{
		{ID: "insert-column-left", Label: "Insert column left",
			action: func() { m.mut.InsertColumn(table, col, mutate.Before) }},
		{ID: "insert-column-right", Label: "Insert column right",
			action: func() { m.mut.InsertColumn(table, col, mutate.After) }},
		{ID: "delete-column", Label: "Delete column", Disabled: oneCol,
			action: func() { m.mut.DeleteColumn(table, col) }},
		{ID: "insert-row-above", Label: "Insert row above",
			action: func() { m.mut.InsertRow(table, row, mutate.Before) }},
		{ID: "insert-row-below", Label: "Insert row below",
			action: func() { m.mut.InsertRow(table, row, mutate.After) }},
		{ID: "delete-row", Label: "Delete row", Disabled: oneRow,
			action: func() { m.mut.DeleteRow(table, row) }},
		{ID: "divider", Divider: true},
		{ID: "delete-table", Label: "Delete table",
			action: func() { m.mut.DeleteTable(table) }},
	}

	for _, ex := range extras {
		ex := ex
		items = append(items, Item{
			ID:    "extra:" + ex.Command,
			Label: ex.Label,
			action: func() {
				if m.run != nil {
					m.run(ex.Command, map[string]any{"table": table})
				}
			},
		})
	}
	return items
}

// HandlePress routes a primary press while the menu is open. Presses before
// the menu is armed are swallowed. A press on an enabled item invokes it and
// closes the menu; any other press dismisses the menu. Returns true when the
// press was consumed.
func (m *Menu) HandlePress(p geometry.Point) bool {
	if !m.open {
		return false
	}
	if !m.armed {
		return true
	}

	el, ok := m.floats.At(p)
	if ok {
		if ent := m.entry(el); ent != nil {
			it := ent.item
			m.Close()
			if !it.Disabled && !it.Divider && it.action != nil {
				m.log.Debugf("menu item invoked: %s", it.ID)
				it.action()
			}
			return true
		}
		if m.panel != nil && el.ID() == m.panel.ID() {
			// Press on panel padding keeps the menu open.
			return true
		}
	}
	m.Close()
	return true
}

// HandleEscape dismisses the menu. Returns true when a menu was open.
func (m *Menu) HandleEscape() bool {
	if !m.open {
		return false
	}
	m.Close()
	return true
}

// ItemAt returns the entry under the point, dividers included.
func (m *Menu) ItemAt(p geometry.Point) (Item, bool) {
	el, ok := m.floats.At(p)
	if !ok {
		return Item{}, false
	}
	if ent := m.entry(el); ent != nil {
		return ent.item, true
	}
	return Item{}, false
}

// Items returns the current entries in display order.
func (m *Menu) Items() []Item {
	out := make([]Item, len(m.entries))
	for i, ent := range m.entries {
		out[i] = ent.item
	}
	return out
}

// Close tears the menu down. Safe to call when no menu is open.
func (m *Menu) Close() {
	if m.arm != nil {
		m.arm.Cancel()
		m.arm = nil
	}
	if m.panel != nil {
		m.floats.Remove(m.panel)
		m.panel = nil
	}
	for _, ent := range m.entries {
		m.floats.Remove(ent.el)
	}
	m.entries = nil
	m.open = false
	m.armed = false
}

func (m *Menu) entry(el *floating.Element) *entry {
	for _, ent := range m.entries {
		if ent.el.ID() == el.ID() {
			return ent
		}
	}
	return nil
}
