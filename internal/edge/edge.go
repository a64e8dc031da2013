// Package edge hit-tests pointer coordinates against cell boundaries and
// classifies them into resize intents: a column border, a row border, or the
// table corner.
package edge

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/geometry"
)

// Kind classifies a resize intent.
type Kind uint8

const (
	// KindNone indicates no resize candidate.
	KindNone Kind = iota
	// KindColumn is a column-border resize.
	KindColumn
	// KindRow is a row-border resize.
	KindRow
	// KindCorner is a whole-table resize from the bottom-right corner.
	KindCorner
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindRow:
		return "row"
	case KindCorner:
		return "corner"
	default:
		return "none"
	}
}

// CursorClass returns the CSS class hook hosts use to style the resize
// cursor for this kind. Empty for KindNone.
func (k Kind) CursorClass() string {
	switch k {
	case KindColumn:
		return "ts-resize-col"
	case KindRow:
		return "ts-resize-row"
	case KindCorner:
		return "ts-resize-corner"
	default:
		return ""
	}
}

// Hit describes a classified resize intent.
type Hit struct {
	// Kind is the resize classification.
	Kind Kind

	// Table is the <table> element being resized.
	Table *html.Node

	// Cell is the cell whose border is under the pointer.
	Cell *html.Node

	// Col is the visual column whose right border is under the pointer,
	// span-adjusted (a colspan-2 cell's right border belongs to its second
	// column). Valid for column and corner hits.
	Col int

	// Row is the row whose bottom border is under the pointer,
	// span-adjusted. Valid for row and corner hits.
	Row int

	// FarCol is the visual column to the right of the border; equals the
	// table's visual column count at the last border.
	FarCol int

	// FarRow is the row below the border; equals the row count at the last
	// border.
	FarRow int
}

// Detector classifies pointer positions against cell borders.
type Detector struct {
	root     *html.Node
	measurer geometry.Measurer
	handle   int
}

// NewDetector creates a detector over the editable root with the given
// handle hit-zone thickness in pixels.
func NewDetector(root *html.Node, m geometry.Measurer, handle int) *Detector {
	return &Detector{root: root, measurer: m, handle: handle}
}

// Detect classifies the pointer position. The tie-break policy: a pointer in
// both the right and bottom hit zones is a corner hit only when the cell is
// simultaneously in the last visual column and the last row; otherwise the
// column border wins over the row border.
func (d *Detector) Detect(p geometry.Point) (Hit, bool) {
	cell, rect, ok := d.CellAt(p)
	if !ok {
		return Hit{}, false
	}

	nearRight := rect.Right()-p.X <= d.handle
	nearBottom := rect.Bottom()-p.Y <= d.handle
	if !nearRight && !nearBottom {
		return Hit{}, false
	}

	t, ok := htmltable.ForCell(cell)
	if !ok {
		return Hit{}, false
	}
	_, rowIdx, ok := t.CellRow(cell)
	if !ok {
		return Hit{}, false
	}

	col := htmltable.CellStartColumn(cell) + htmltable.ColSpan(cell) - 1
	row := rowIdx + htmltable.RowSpan(cell) - 1
	lastCol := col >= t.VisualColumns()-1
	lastRow := row >= len(t.Rows())-1

	hit := Hit{
		Table:  t.Node(),
		Cell:   cell,
		Col:    col,
		Row:    row,
		FarCol: col + 1,
		FarRow: row + 1,
	}

	switch {
	case nearRight && nearBottom && lastCol && lastRow:
		hit.Kind = KindCorner
	case nearRight:
		hit.Kind = KindColumn
	default:
		hit.Kind = KindRow
	}
	return hit, true
}

// CellAt returns the innermost cell whose measured rect contains p. Cells of
// nested tables appear later in document order, so the last match wins.
func (d *Detector) CellAt(p geometry.Point) (*html.Node, geometry.Rect, bool) {
	var (
		found *html.Node
		rect  geometry.Rect
	)
	for _, table := range dom.FindAll(d.root, "table") {
		t, ok := htmltable.FromNode(table)
		if !ok {
			continue
		}
		for _, row := range t.Rows() {
			for _, cell := range htmltable.RowCells(row) {
				r, ok := d.measurer.CellRect(cell)
				if !ok {
					continue
				}
				if r.Contains(p) {
					found = cell
					rect = r
				}
			}
		}
	}
	if found == nil {
		return nil, geometry.Rect{}, false
	}
	return found, rect, true
}

// TableAt returns the innermost table whose measured rect contains p.
func (d *Detector) TableAt(p geometry.Point) (*html.Node, bool) {
	var found *html.Node
	for _, table := range dom.FindAll(d.root, "table") {
		if rect, ok := d.measurer.TableRect(table); ok && rect.Contains(p) {
			found = table
		}
	}
	return found, found != nil
}
