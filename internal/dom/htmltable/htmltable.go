// Package htmltable provides a structural view over a <table> element: its
// rows, cells, visual column count, and the <colgroup> sizing overlay used to
// realize per-column widths without styling individual cells.
package htmltable

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
)

// OverlayAttr marks the sizing overlay colgroup so it can be told apart from
// author-provided column groups.
const OverlayAttr = "data-tablestorm"

// overlayAttrVal is the marker value written to OverlayAttr.
const overlayAttrVal = "colgroup"

// Table wraps a <table> element.
type Table struct {
	node *html.Node
}

// FromNode returns a Table when n is a <table> element.
func FromNode(n *html.Node) (*Table, bool) {
	if !dom.IsElement(n, "table") {
		return nil, false
	}
	return &Table{node: n}, true
}

// ForCell returns the Table containing n (a cell or any descendant of one).
func ForCell(n *html.Node) (*Table, bool) {
	return FromNode(dom.Closest(n, "table"))
}

// Node returns the underlying <table> element.
func (t *Table) Node() *html.Node {
	return t.node
}

// Rows returns the table's <tr> elements in document order, looking through
// <thead>, <tbody>, and <tfoot> sections.
func (t *Table) Rows() []*html.Node {
	var rows []*html.Node
	for _, c := range dom.ElementChildren(t.node) {
		switch {
		case dom.IsElement(c, "tr"):
			rows = append(rows, c)
		case dom.IsElement(c, "thead"), dom.IsElement(c, "tbody"), dom.IsElement(c, "tfoot"):
			rows = append(rows, dom.ChildrenByTag(c, "tr")...)
		}
	}
	return rows
}

// RowCells returns the <td>/<th> children of a row.
func RowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for _, c := range dom.ElementChildren(row) {
		if dom.IsElement(c, "td") || dom.IsElement(c, "th") {
			cells = append(cells, c)
		}
	}
	return cells
}

// IsCell reports whether n is a <td> or <th> element.
func IsCell(n *html.Node) bool {
	return dom.IsElement(n, "td") || dom.IsElement(n, "th")
}

// ColSpan returns the cell's colspan (minimum 1).
func ColSpan(cell *html.Node) int {
	return dom.IntAttr(cell, "colspan", 1)
}

// RowSpan returns the cell's rowspan (minimum 1).
func RowSpan(cell *html.Node) int {
	return dom.IntAttr(cell, "rowspan", 1)
}

// VisualColumns returns the table's visual column count: the colspan sum of
// the first row's cells. Zero for a table with no rows.
func (t *Table) VisualColumns() int {
	rows := t.Rows()
	if len(rows) == 0 {
		return 0
	}
	total := 0
	for _, cell := range RowCells(rows[0]) {
		total += ColSpan(cell)
	}
	return total
}

// RowIndex returns the position of row within the table, or -1.
func (t *Table) RowIndex(row *html.Node) int {
	for i, r := range t.Rows() {
		if r == row {
			return i
		}
	}
	return -1
}

// CellRow returns the row containing cell and its index in the table.
func (t *Table) CellRow(cell *html.Node) (*html.Node, int, bool) {
	row := dom.Closest(cell, "tr")
	if row == nil {
		return nil, -1, false
	}
	idx := t.RowIndex(row)
	if idx < 0 {
		return nil, -1, false
	}
	return row, idx, true
}

// CellStartColumn returns the visual column at which cell begins: the colspan
// sum of its preceding sibling cells.
func CellStartColumn(cell *html.Node) int {
	row := dom.Closest(cell, "tr")
	if row == nil {
		return 0
	}
	col := 0
	for _, c := range RowCells(row) {
		if c == cell {
			return col
		}
		col += ColSpan(c)
	}
	return col
}

// Overlay returns the table's sizing overlay colgroup, if present.
func (t *Table) Overlay() (*html.Node, bool) {
	for _, c := range dom.ChildrenByTag(t.node, "colgroup") {
		if v, ok := dom.Attr(c, OverlayAttr); ok && strings.EqualFold(v, overlayAttrVal) {
			return c, true
		}
	}
	return nil, false
}

// HasOverlay reports whether the sizing overlay exists.
func (t *Table) HasOverlay() bool {
	_, ok := t.Overlay()
	return ok
}

// EnsureOverlay returns the sizing overlay, creating it as the table's first
// child when absent. A freshly created overlay holds one <col> per visual
// column with the given widths; widths shorter than the column count are
// padded with the final entry (or zero).
func (t *Table) EnsureOverlay(widths []int) *html.Node {
	if cg, ok := t.Overlay(); ok {
		return cg
	}
	cg := dom.NewElement("colgroup", html.Attribute{Key: OverlayAttr, Val: overlayAttrVal})
	cols := t.VisualColumns()
	for i := 0; i < cols; i++ {
		w := 0
		switch {
		case i < len(widths):
			w = widths[i]
		case len(widths) > 0:
			w = widths[len(widths)-1]
		}
		cg.AppendChild(newCol(w))
	}
	dom.PrependChild(t.node, cg)
	return cg
}

// OverlayCols returns the <col> children of the sizing overlay, or nil when
// no overlay exists.
func (t *Table) OverlayCols() []*html.Node {
	cg, ok := t.Overlay()
	if !ok {
		return nil
	}
	return dom.ChildrenByTag(cg, "col")
}

// OverlayWidths returns the per-column widths recorded in the overlay.
// Unparsable entries fall back to the provided width. ok is false when no
// overlay exists.
func (t *Table) OverlayWidths(fallback int) ([]int, bool) {
	cg, ok := t.Overlay()
	if !ok {
		return nil, false
	}
	cols := dom.ChildrenByTag(cg, "col")
	widths := make([]int, len(cols))
	for i, col := range cols {
		w, ok := dom.StylePx(col, "width")
		if !ok {
			w = fallback
		}
		widths[i] = w
	}
	return widths, true
}

// SetColumnWidth writes a width into the overlay entry for the given visual
// column. No-op when the overlay is missing or the index is out of range.
func (t *Table) SetColumnWidth(index, width int) {
	cols := t.OverlayCols()
	if index < 0 || index >= len(cols) {
		return
	}
	dom.SetStylePx(cols[index], "width", width)
}

// InsertOverlayCol splices a new overlay entry at the given position with the
// given width. No-op when no overlay exists.
func (t *Table) InsertOverlayCol(index, width int) {
	cg, ok := t.Overlay()
	if !ok {
		return
	}
	dom.InsertChildAt(cg, newCol(width), index)
}

// RemoveOverlayCol removes the overlay entry at the given position.
func (t *Table) RemoveOverlayCol(index int) {
	cols := t.OverlayCols()
	if index < 0 || index >= len(cols) {
		return
	}
	dom.Detach(cols[index])
}

// Width returns the table's inline width, or fallback when unset.
func (t *Table) Width(fallback int) int {
	if w, ok := dom.StylePx(t.node, "width"); ok {
		return w
	}
	return fallback
}

// SetWidth writes the table's inline width.
func (t *Table) SetWidth(w int) {
	dom.SetStylePx(t.node, "width", w)
}

// Height returns the table's inline height, or fallback when unset.
func (t *Table) Height(fallback int) int {
	if h, ok := dom.StylePx(t.node, "height"); ok {
		return h
	}
	return fallback
}

// SetHeight writes the table's inline height.
func (t *Table) SetHeight(h int) {
	dom.SetStylePx(t.node, "height", h)
}

// RowHeight returns a row's inline height, or fallback when unset.
func RowHeight(row *html.Node, fallback int) int {
	if h, ok := dom.StylePx(row, "height"); ok {
		return h
	}
	return fallback
}

// SetRowHeight writes a row's inline height.
func SetRowHeight(row *html.Node, h int) {
	dom.SetStylePx(row, "height", h)
}

func newCol(width int) *html.Node {
	col := dom.NewElement("col")
	if width > 0 {
		dom.SetStylePx(col, "width", width)
	}
	return col
}

// NewCell builds an empty cell equivalent to a blank line.
func NewCell() *html.Node {
	td := dom.NewElement("td")
	td.AppendChild(dom.NewElement("br"))
	return td
}

// NewRow builds a row holding cols empty cells.
func NewRow(cols int) *html.Node {
	tr := dom.NewElement("tr")
	for i := 0; i < cols; i++ {
		tr.AppendChild(NewCell())
	}
	return tr
}

// Markup returns insertion markup for an empty rows x cols table.
func Markup(rows, cols int) string {
	var b strings.Builder
	b.WriteString("<table><tbody>")
	for r := 0; r < rows; r++ {
		b.WriteString("<tr>")
		for c := 0; c < cols; c++ {
			b.WriteString("<td><br/></td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
