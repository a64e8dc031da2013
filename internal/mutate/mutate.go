// Package mutate implements structural table edits: inserting and deleting
// columns, rows, and whole tables, keeping the sizing overlay in lockstep
// and draining the host's mutation channel after every direct DOM edit.
//
// Invalid indices degrade to no-ops or clamp to valid bounds; deleting the
// last remaining column or row is refused silently.
package mutate

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/host"
	"github.com/dshills/tablestorm/internal/logging"
)

// Placement selects which side of an index an insertion lands on.
type Placement uint8

const (
	// Before inserts at the index itself.
	Before Placement = iota
	// After inserts immediately past the index.
	After
)

// String returns a string representation of the placement.
func (p Placement) String() string {
	if p == After {
		return "after"
	}
	return "before"
}

// Mutator performs structural table edits.
type Mutator struct {
	cfg    config.Config
	resync *host.Resync
	log    *logging.Logger
}

// NewMutator creates a Mutator.
func NewMutator(cfg config.Config, resync *host.Resync, log *logging.Logger) *Mutator {
	if log == nil {
		log = logging.Nop()
	}
	return &Mutator{cfg: cfg, resync: resync, log: log}
}

// InsertColumn splices one empty cell into every row at the resolved
// position. When a sizing overlay exists, a matching entry is spliced in at
// the minimum column width and the table width grows accordingly.
func (m *Mutator) InsertColumn(table *html.Node, index int, placement Placement) {
	t, ok := htmltable.FromNode(table)
	if !ok {
		return
	}
	pos := resolve(index, placement)

	for _, row := range t.Rows() {
		dom.InsertChildAt(row, htmltable.NewCell(), pos)
	}

	if t.HasOverlay() {
		t.InsertOverlayCol(pos, m.cfg.MinColumnWidth)
		m.applyOverlayWidth(t)
	}

	m.log.Debugf("inserted column at %d (%s)", index, placement)
	m.resync.Drain()
}

// DeleteColumn removes the cell at index from every row that has one. Rows
// with fewer cells (spanned or irregular rows) are left untouched. A table
// with a single visual column is never reduced further.
func (m *Mutator) DeleteColumn(table *html.Node, index int) {
	t, ok := htmltable.FromNode(table)
	if !ok {
		return
	}
	if t.VisualColumns() <= 1 || index < 0 {
		return
	}

	for _, row := range t.Rows() {
		cells := htmltable.RowCells(row)
		if index < len(cells) {
			dom.Detach(cells[index])
		}
	}

	if t.HasOverlay() {
		t.RemoveOverlayCol(index)
		m.applyOverlayWidth(t)
	}

	m.log.Debugf("deleted column %d", index)
	m.resync.Drain()
}

// InsertRow inserts a new row holding one empty cell per visual column at
// the resolved position.
func (m *Mutator) InsertRow(table *html.Node, index int, placement Placement) {
	t, ok := htmltable.FromNode(table)
	if !ok {
		return
	}

	cols := t.VisualColumns()
	if cols < 1 {
		cols = 1
	}
	newRow := htmltable.NewRow(cols)

	rows := t.Rows()
	pos := resolve(index, placement)
	switch {
	case len(rows) == 0:
		rowParent(t).AppendChild(newRow)
	case pos >= len(rows):
		rows[len(rows)-1].Parent.AppendChild(newRow)
	default:
		if pos < 0 {
			pos = 0
		}
		rows[pos].Parent.InsertBefore(newRow, rows[pos])
	}

	m.log.Debugf("inserted row at %d (%s)", index, placement)
	m.resync.Drain()
}

// DeleteRow removes the row at index. The last remaining row is never
// removed.
func (m *Mutator) DeleteRow(table *html.Node, index int) {
	t, ok := htmltable.FromNode(table)
	if !ok {
		return
	}
	rows := t.Rows()
	if len(rows) <= 1 || index < 0 || index >= len(rows) {
		return
	}

	dom.Detach(rows[index])
	m.log.Debugf("deleted row %d", index)
	m.resync.Drain()
}

// DeleteTable detaches the table from the document.
func (m *Mutator) DeleteTable(table *html.Node) {
	if !dom.IsElement(table, "table") {
		return
	}
	dom.Detach(table)
	m.log.Debugf("deleted table")
	m.resync.Drain()
}

// applyOverlayWidth recomputes the table's inline width as the sum of its
// overlay entries. Unparsable entries count as the minimum column width.
func (m *Mutator) applyOverlayWidth(t *htmltable.Table) {
	widths, ok := t.OverlayWidths(m.cfg.MinColumnWidth)
	if !ok {
		return
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	t.SetWidth(total)
}

// resolve converts an index and placement into a splice position.
func resolve(index int, placement Placement) int {
	if placement == After {
		index++
	}
	if index < 0 {
		return 0
	}
	return index
}

// rowParent returns the element new rows append into when the table has no
// rows: an existing <tbody>, else the table itself.
func rowParent(t *htmltable.Table) *html.Node {
	if bodies := dom.ChildrenByTag(t.Node(), "tbody"); len(bodies) > 0 {
		return bodies[0]
	}
	return t.Node()
}
