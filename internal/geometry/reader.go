package geometry

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
)

// Reader extracts table geometry from live measurements. Overlay widths are
// the source of truth when present; measured rects fill in for tables that
// have never been resized.
type Reader struct {
	measurer     Measurer
	minColWidth  int
	minRowHeight int
}

// NewReader creates a Reader over the given measurer and size floors.
func NewReader(m Measurer, minColWidth, minRowHeight int) *Reader {
	return &Reader{
		measurer:     m,
		minColWidth:  minColWidth,
		minRowHeight: minRowHeight,
	}
}

// ColumnWidths returns one width per visual column. With an overlay present
// the overlay entries are read directly (unparsable entries fall back to the
// minimum); otherwise first-row cells are measured and spans split evenly.
func (r *Reader) ColumnWidths(t *htmltable.Table) []int {
	if widths, ok := t.OverlayWidths(r.minColWidth); ok {
		return widths
	}

	cols := t.VisualColumns()
	widths := make([]int, 0, cols)
	rows := t.Rows()
	if len(rows) > 0 {
		for _, cell := range htmltable.RowCells(rows[0]) {
			span := htmltable.ColSpan(cell)
			w := r.minColWidth
			if rect, ok := r.measurer.CellRect(cell); ok && span > 0 {
				w = rect.Width / span
			}
			if w < r.minColWidth {
				w = r.minColWidth
			}
			for i := 0; i < span; i++ {
				widths = append(widths, w)
			}
		}
	}
	for len(widths) < cols {
		widths = append(widths, r.minColWidth)
	}
	return widths
}

// RowHeights returns one height per row, preferring inline heights and
// falling back to measuring the row's first unspanned cell.
func (r *Reader) RowHeights(t *htmltable.Table) []int {
	rows := t.Rows()
	heights := make([]int, len(rows))
	for i, row := range rows {
		if h, ok := dom.StylePx(row, "height"); ok {
			heights[i] = h
			continue
		}
		heights[i] = r.measuredRowHeight(row)
	}
	return heights
}

// TableSize returns the table's current width and height. An overlay makes
// the width the sum of its entries; otherwise the measured rect is used, and
// the minimums cover tables that cannot be measured at all.
func (r *Reader) TableSize(t *htmltable.Table) (width, height int) {
	if widths, ok := t.OverlayWidths(r.minColWidth); ok {
		width = 0
		for _, w := range widths {
			width += w
		}
	} else if rect, ok := r.measurer.TableRect(t.Node()); ok {
		width = rect.Width
	} else {
		width = t.Width(r.minColWidth * t.VisualColumns())
	}

	if rect, ok := r.measurer.TableRect(t.Node()); ok {
		height = rect.Height
	} else {
		height = t.Height(r.minRowHeight * len(t.Rows()))
	}
	return width, height
}

// measuredRowHeight measures the first rowspan-1 cell of the row, falling
// back to the minimum when nothing measurable exists.
func (r *Reader) measuredRowHeight(row *html.Node) int {
	for _, cell := range htmltable.RowCells(row) {
		if htmltable.RowSpan(cell) != 1 {
			continue
		}
		if rect, ok := r.measurer.CellRect(cell); ok {
			if rect.Height < r.minRowHeight {
				return r.minRowHeight
			}
			return rect.Height
		}
	}
	return r.minRowHeight
}
