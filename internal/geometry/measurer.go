package geometry

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
)

// Measurer reports live bounding boxes for table elements. Hosts with a real
// layout engine implement this against their renderer; GridMeasurer serves
// hosts (and tests) that lay tables out purely from declared sizes.
type Measurer interface {
	// TableRect returns the bounding box of a <table> element.
	TableRect(table *html.Node) (Rect, bool)

	// CellRect returns the bounding box of a <td>/<th> element.
	CellRect(cell *html.Node) (Rect, bool)
}

// GridMeasurer derives rectangles from declared sizes only: overlay column
// widths, inline row heights, and configured minimums. It performs no text
// layout. Table origins are registered by the host.
type GridMeasurer struct {
	minColWidth  int
	minRowHeight int
	origins      map[*html.Node]Point
}

// NewGridMeasurer creates a measurer with the given size floors.
func NewGridMeasurer(minColWidth, minRowHeight int) *GridMeasurer {
	return &GridMeasurer{
		minColWidth:  minColWidth,
		minRowHeight: minRowHeight,
		origins:      make(map[*html.Node]Point),
	}
}

// SetOrigin registers the top-left corner of a table. Unregistered tables
// measure from (0, 0).
func (g *GridMeasurer) SetOrigin(table *html.Node, origin Point) {
	g.origins[table] = origin
}

// Forget drops a table's registered origin.
func (g *GridMeasurer) Forget(table *html.Node) {
	delete(g.origins, table)
}

// TableRect implements Measurer.
func (g *GridMeasurer) TableRect(table *html.Node) (Rect, bool) {
	t, ok := htmltable.FromNode(table)
	if !ok {
		return Rect{}, false
	}
	widths := g.columnWidths(t)
	heights := g.rowHeights(t)
	return Rect{
		X:      g.origins[table].X,
		Y:      g.origins[table].Y,
		Width:  sum(widths),
		Height: sum(heights),
	}, true
}

// CellRect implements Measurer.
func (g *GridMeasurer) CellRect(cell *html.Node) (Rect, bool) {
	t, ok := htmltable.ForCell(cell)
	if !ok {
		return Rect{}, false
	}
	_, rowIdx, ok := t.CellRow(cell)
	if !ok {
		return Rect{}, false
	}

	widths := g.columnWidths(t)
	heights := g.rowHeights(t)
	start := htmltable.CellStartColumn(cell)
	span := htmltable.ColSpan(cell)
	rspan := htmltable.RowSpan(cell)

	origin := g.origins[t.Node()]
	return Rect{
		X:      origin.X + sum(widths[:clamp(start, len(widths))]),
		Y:      origin.Y + sum(heights[:clamp(rowIdx, len(heights))]),
		Width:  sum(slice(widths, start, start+span)),
		Height: sum(slice(heights, rowIdx, rowIdx+rspan)),
	}, true
}

// columnWidths returns one width per visual column: overlay widths when an
// overlay exists, otherwise first-row cell inline widths split across spans,
// with the configured minimum as the fallback.
func (g *GridMeasurer) columnWidths(t *htmltable.Table) []int {
	if widths, ok := t.OverlayWidths(g.minColWidth); ok {
		return widths
	}
	cols := t.VisualColumns()
	widths := make([]int, 0, cols)
	rows := t.Rows()
	if len(rows) > 0 {
		for _, cell := range htmltable.RowCells(rows[0]) {
			span := htmltable.ColSpan(cell)
			w := g.minColWidth
			if cw, ok := dom.StylePx(cell, "width"); ok && span > 0 {
				w = cw / span
			}
			for i := 0; i < span; i++ {
				widths = append(widths, w)
			}
		}
	}
	for len(widths) < cols {
		widths = append(widths, g.minColWidth)
	}
	return widths
}

// rowHeights returns one height per row from inline heights, with the
// configured minimum as the fallback.
func (g *GridMeasurer) rowHeights(t *htmltable.Table) []int {
	rows := t.Rows()
	heights := make([]int, len(rows))
	for i, row := range rows {
		heights[i] = htmltable.RowHeight(row, g.minRowHeight)
	}
	return heights
}

func sum(vals []int) int {
	total := 0
	for _, v := range vals {
		total += v
	}
	return total
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func slice(vals []int, lo, hi int) []int {
	lo = clamp(lo, len(vals))
	hi = clamp(hi, len(vals))
	if lo >= hi {
		return nil
	}
	return vals[lo:hi]
}
