package drag

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/edge"
	"github.com/dshills/tablestorm/internal/floating"
	"github.com/dshills/tablestorm/internal/geometry"
)

type fixture struct {
	ctl    *Controller
	floats *floating.Manager
	tbl    *htmltable.Table
	body   *html.Node
}

// newFixture builds a 2x3 table with overlay widths [40 50 60] and 20px rows.
func newFixture(t *testing.T, cfg config.Config) *fixture {
	t.Helper()
	body, err := dom.ParseBody(`<table><tbody>
<tr style="height:20px"><td>A1</td><td>B1</td><td>C1</td></tr>
<tr style="height:20px"><td>A2</td><td>B2</td><td>C2</td></tr>
</tbody></table>`)
	if err != nil {
		t.Fatalf("ParseBody() error = %v", err)
	}
	tbl, _ := htmltable.FromNode(dom.FindAll(body, "table")[0])
	tbl.EnsureOverlay([]int{40, 50, 60})

	m := geometry.NewGridMeasurer(cfg.MinColumnWidth, cfg.MinRowHeight)
	reader := geometry.NewReader(m, cfg.MinColumnWidth, cfg.MinRowHeight)
	floats := floating.NewManager(body)
	ctl := NewController(cfg, reader, floats, body, nil)
	ctl.SetViewport(geometry.Rect{Width: 800, Height: 600})
	return &fixture{ctl: ctl, floats: floats, tbl: tbl, body: body}
}

func colHit(f *fixture, col int) edge.Hit {
	return edge.Hit{Kind: edge.KindColumn, Table: f.tbl.Node(), Col: col, FarCol: col + 1}
}

func TestPhaseString(t *testing.T) {
	if PhaseIdle.String() != "idle" || PhaseDragging.String() != "dragging" {
		t.Error("Phase.String() mismatch")
	}
}

func TestColumnResize(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	if !f.ctl.Begin(colHit(f, 0), geometry.Point{X: 40, Y: 10}) {
		t.Fatal("Begin() = false")
	}
	f.ctl.Update(geometry.Point{X: 70, Y: 10})
	f.ctl.End()

	widths, _ := f.tbl.OverlayWidths(0)
	if len(widths) != 3 || widths[0] != 70 || widths[1] != 50 || widths[2] != 60 {
		t.Errorf("overlay = %v, want [70 50 60]", widths)
	}
	if got := f.tbl.Width(0); got != 180 {
		t.Errorf("table width = %d, want overlay sum 180", got)
	}
	if f.ctl.Dragging() {
		t.Error("still dragging after End()")
	}
}

func TestColumnResizeClampsAtMinimum(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MinColumnWidth = 40
	f := newFixture(t, cfg)

	f.ctl.Begin(colHit(f, 2), geometry.Point{X: 150, Y: 10})
	// Shrinking the 60px column by 50 bottoms out at the 40px minimum.
	f.ctl.Update(geometry.Point{X: 100, Y: 10})
	f.ctl.End()

	widths, _ := f.tbl.OverlayWidths(0)
	if widths[2] != 40 {
		t.Errorf("column 2 = %d, want clamped 40", widths[2])
	}
}

func TestColumnResizeCreatesOverlay(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	// Strip the fixture overlay so the drag has to create one from the
	// snapshot widths.
	overlay, _ := f.tbl.Overlay()
	dom.Detach(overlay)
	if f.tbl.HasOverlay() {
		t.Fatal("overlay still present")
	}

	f.ctl.Begin(colHit(f, 1), geometry.Point{X: 60, Y: 10})
	f.ctl.Update(geometry.Point{X: 75, Y: 10})
	f.ctl.End()

	if !f.tbl.HasOverlay() {
		t.Fatal("resize did not create the overlay")
	}
	widths, _ := f.tbl.OverlayWidths(0)
	if len(widths) != 3 {
		t.Fatalf("overlay entries = %d, want 3", len(widths))
	}
	if widths[1] != 45 {
		t.Errorf("column 1 = %d, want snapshot 30 + 15", widths[1])
	}
}

func TestDeltasApplyAgainstSnapshot(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	f.ctl.Begin(colHit(f, 0), geometry.Point{X: 40, Y: 10})
	f.ctl.Update(geometry.Point{X: 60, Y: 10})
	f.ctl.Update(geometry.Point{X: 50, Y: 10})
	f.ctl.End()

	// The second move is 40+10, not 60-10 compounded with the first.
	widths, _ := f.tbl.OverlayWidths(0)
	if widths[0] != 50 {
		t.Errorf("column 0 = %d, want 50", widths[0])
	}
}

func TestRowResize(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())
	htmltable.SetRowHeight(f.tbl.Rows()[0], 30)

	hit := edge.Hit{Kind: edge.KindRow, Table: f.tbl.Node(), Row: 0, FarRow: 1}
	f.ctl.Begin(hit, geometry.Point{X: 10, Y: 30})
	f.ctl.Update(geometry.Point{X: 10, Y: 50})
	f.ctl.End()

	if got := htmltable.RowHeight(f.tbl.Rows()[0], 0); got != 50 {
		t.Errorf("row 0 height = %d, want 30+20=50", got)
	}
	// Other rows keep their heights.
	if got := htmltable.RowHeight(f.tbl.Rows()[1], 0); got != 20 {
		t.Errorf("row 1 height = %d, want 20", got)
	}
}

func TestRowResizeClampsAtMinimum(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	hit := edge.Hit{Kind: edge.KindRow, Table: f.tbl.Node(), Row: 1, FarRow: 2}
	f.ctl.Begin(hit, geometry.Point{X: 10, Y: 40})
	f.ctl.Update(geometry.Point{X: 10, Y: 0})
	f.ctl.End()

	if got := htmltable.RowHeight(f.tbl.Rows()[1], 0); got != 20 {
		t.Errorf("row 1 height = %d, want min 20", got)
	}
}

func TestCornerResize(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	hit := edge.Hit{Kind: edge.KindCorner, Table: f.tbl.Node(), Col: 2, Row: 1}
	f.ctl.Begin(hit, geometry.Point{X: 150, Y: 40})
	f.ctl.Update(geometry.Point{X: 170, Y: 55})
	f.ctl.End()

	widths, _ := f.tbl.OverlayWidths(0)
	if widths[2] != 80 {
		t.Errorf("last column = %d, want 60+20=80", widths[2])
	}
	if got := htmltable.RowHeight(f.tbl.Rows()[1], 0); got != 35 {
		t.Errorf("last row height = %d, want 20+15=35", got)
	}
	if got := f.tbl.Width(0); got != 170 {
		t.Errorf("table width = %d, want 170", got)
	}
	if got := f.tbl.Height(0); got != 55 {
		t.Errorf("table height = %d, want row sum 55", got)
	}
}

func TestShieldLifecycle(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	f.ctl.Begin(colHit(f, 0), geometry.Point{X: 40, Y: 10})
	if got := f.floats.CountKind(floating.KindShield); got != 1 {
		t.Fatalf("shields during drag = %d, want 1", got)
	}
	el, ok := f.floats.At(geometry.Point{X: 400, Y: 300})
	if !ok || el.Kind() != floating.KindShield {
		t.Error("shield does not cover the viewport")
	}
	if !dom.HasClass(el.Node(), "ts-resize-col") {
		t.Error("shield missing the resize cursor class")
	}

	f.ctl.End()
	if got := f.floats.CountKind(floating.KindShield); got != 0 {
		t.Errorf("shields after End() = %d, want 0", got)
	}
}

func TestBeginWhileDragging(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	f.ctl.Begin(colHit(f, 0), geometry.Point{X: 40, Y: 10})
	if f.ctl.Begin(colHit(f, 1), geometry.Point{X: 90, Y: 10}) {
		t.Error("Begin() accepted a second concurrent session")
	}
	if got := f.floats.CountKind(floating.KindShield); got != 1 {
		t.Errorf("shields = %d, want 1", got)
	}
}

func TestBeginRejectsEmptyHit(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	if f.ctl.Begin(edge.Hit{}, geometry.Point{}) {
		t.Error("Begin() accepted an empty hit")
	}
	if f.ctl.Dragging() {
		t.Error("phase changed on rejected Begin()")
	}
}

func TestDetachedTableAborts(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	f.ctl.Begin(colHit(f, 0), geometry.Point{X: 40, Y: 10})
	dom.Detach(f.tbl.Node())
	f.ctl.Update(geometry.Point{X: 70, Y: 10})

	if f.ctl.Dragging() {
		t.Error("session survived table removal")
	}
	if got := f.floats.CountKind(floating.KindShield); got != 0 {
		t.Errorf("shields after abort = %d, want 0", got)
	}
	// Nothing was resized.
	widths, _ := f.tbl.OverlayWidths(0)
	if widths[0] != 40 {
		t.Errorf("column 0 = %d, want untouched 40", widths[0])
	}
}

func TestUpdateAndEndWhileIdle(t *testing.T) {
	f := newFixture(t, config.DefaultConfig())

	// Must not panic or mutate anything.
	f.ctl.Update(geometry.Point{X: 70, Y: 10})
	f.ctl.End()
	f.ctl.Abort()

	if f.ctl.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", f.ctl.Phase())
	}
}
