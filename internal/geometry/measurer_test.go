package geometry

import (
	"testing"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
)

const fixture2x3 = `<table><tbody>
<tr><td>A1</td><td>B1</td><td>C1</td></tr>
<tr><td>A2</td><td>B2</td><td>C2</td></tr>
</tbody></table>`

func parseTable(t *testing.T, src string) *htmltable.Table {
	t.Helper()
	body, err := dom.ParseBody(src)
	if err != nil {
		t.Fatalf("ParseBody() error = %v", err)
	}
	tables := dom.FindAll(body, "table")
	if len(tables) == 0 {
		t.Fatal("no table in fixture")
	}
	tbl, _ := htmltable.FromNode(tables[0])
	return tbl
}

func TestGridMeasurerDefaults(t *testing.T) {
	tbl := parseTable(t, fixture2x3)
	m := NewGridMeasurer(30, 20)

	rect, ok := m.TableRect(tbl.Node())
	if !ok {
		t.Fatal("TableRect() ok = false")
	}
	// 3 columns at the 30px floor, 2 rows at the 20px floor.
	if rect.Width != 90 || rect.Height != 40 {
		t.Errorf("TableRect() = %+v, want 90x40", rect)
	}
}

func TestGridMeasurerOverlayAndOrigin(t *testing.T) {
	tbl := parseTable(t, fixture2x3)
	tbl.EnsureOverlay([]int{40, 50, 60})
	htmltable.SetRowHeight(tbl.Rows()[0], 30)

	m := NewGridMeasurer(30, 20)
	m.SetOrigin(tbl.Node(), Point{X: 5, Y: 7})

	rect, _ := m.TableRect(tbl.Node())
	want := Rect{X: 5, Y: 7, Width: 150, Height: 50}
	if rect != want {
		t.Errorf("TableRect() = %+v, want %+v", rect, want)
	}

	// Cell B2: second column, second row.
	cell := htmltable.RowCells(tbl.Rows()[1])[1]
	crect, ok := m.CellRect(cell)
	if !ok {
		t.Fatal("CellRect() ok = false")
	}
	cwant := Rect{X: 5 + 40, Y: 7 + 30, Width: 50, Height: 20}
	if crect != cwant {
		t.Errorf("CellRect(B2) = %+v, want %+v", crect, cwant)
	}
}

func TestGridMeasurerColspanCell(t *testing.T) {
	tbl := parseTable(t, `<table>
<tr><td colspan="2">a</td><td>b</td></tr>
<tr><td>c</td><td>d</td><td>e</td></tr>
</table>`)
	tbl.EnsureOverlay([]int{40, 50, 60})
	m := NewGridMeasurer(30, 20)

	wide := htmltable.RowCells(tbl.Rows()[0])[0]
	rect, _ := m.CellRect(wide)
	if rect.X != 0 || rect.Width != 90 {
		t.Errorf("CellRect(colspan 2) = %+v, want X=0 Width=90", rect)
	}

	after := htmltable.RowCells(tbl.Rows()[0])[1]
	rect, _ = m.CellRect(after)
	if rect.X != 90 || rect.Width != 60 {
		t.Errorf("CellRect(after span) = %+v, want X=90 Width=60", rect)
	}
}

func TestGridMeasurerRejectsNonTable(t *testing.T) {
	m := NewGridMeasurer(30, 20)
	if _, ok := m.TableRect(dom.NewElement("div")); ok {
		t.Error("TableRect(div) ok = true")
	}
	if _, ok := m.CellRect(dom.NewElement("td")); ok {
		t.Error("CellRect(detached cell) ok = true")
	}
}

func TestReaderColumnWidths(t *testing.T) {
	tbl := parseTable(t, fixture2x3)
	m := NewGridMeasurer(30, 20)
	r := NewReader(m, 30, 20)

	// No overlay: measured widths fall back to the floor.
	widths := r.ColumnWidths(tbl)
	if len(widths) != 3 {
		t.Fatalf("ColumnWidths() len = %d, want 3", len(widths))
	}
	for i, w := range widths {
		if w != 30 {
			t.Errorf("width %d = %d, want 30", i, w)
		}
	}

	// Overlay present: entries read directly.
	tbl.EnsureOverlay([]int{40, 50, 60})
	widths = r.ColumnWidths(tbl)
	if widths[0] != 40 || widths[1] != 50 || widths[2] != 60 {
		t.Errorf("ColumnWidths() = %v, want [40 50 60]", widths)
	}
}

func TestReaderRowHeights(t *testing.T) {
	tbl := parseTable(t, fixture2x3)
	htmltable.SetRowHeight(tbl.Rows()[1], 35)
	r := NewReader(NewGridMeasurer(30, 20), 30, 20)

	heights := r.RowHeights(tbl)
	if len(heights) != 2 || heights[0] != 20 || heights[1] != 35 {
		t.Errorf("RowHeights() = %v, want [20 35]", heights)
	}
}

func TestReaderTableSize(t *testing.T) {
	tbl := parseTable(t, fixture2x3)
	r := NewReader(NewGridMeasurer(30, 20), 30, 20)

	w, h := r.TableSize(tbl)
	if w != 90 || h != 40 {
		t.Errorf("TableSize() = %d x %d, want 90 x 40", w, h)
	}

	// Overlay becomes the width source of truth.
	tbl.EnsureOverlay([]int{100, 100, 100})
	w, _ = r.TableSize(tbl)
	if w != 300 {
		t.Errorf("TableSize() width with overlay = %d, want 300", w)
	}
}
