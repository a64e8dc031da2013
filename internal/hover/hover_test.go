package hover

import (
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/floating"
	"github.com/dshills/tablestorm/internal/geometry"
	"github.com/dshills/tablestorm/internal/host"
	"github.com/dshills/tablestorm/internal/mutate"
	"github.com/dshills/tablestorm/internal/sched"
)

type fixture struct {
	btns   *Buttons
	floats *floating.Manager
	clock  *sched.Manual
	meas   *geometry.GridMeasurer
	rec    *host.Recorder
	tbl    *htmltable.Table
	body   *html.Node
}

// newFixture builds a table with overlay [40 50 60] and 20px rows at origin
// (10,10), so its bounding box is {10 10 150 40}.
func newFixture(t *testing.T) *fixture {
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

	cfg := config.DefaultConfig()
	f := &fixture{
		floats: floating.NewManager(body),
		clock:  sched.NewManual(),
		meas:   geometry.NewGridMeasurer(cfg.MinColumnWidth, cfg.MinRowHeight),
		rec:    host.NewRecorder(body),
		tbl:    tbl,
		body:   body,
	}
	f.meas.SetOrigin(tbl.Node(), geometry.Point{X: 10, Y: 10})
	mut := mutate.NewMutator(cfg, host.NewResync(f.rec, nil), nil)
	f.btns = New(cfg, f.floats, f.meas, mut, f.clock, nil)
	return f
}

func TestActionString(t *testing.T) {
	tests := []struct {
		act  Action
		want string
	}{
		{ActionNone, "none"},
		{ActionAddColumn, "add-column"},
		{ActionAddRow, "add-row"},
		{ActionDeleteTable, "delete-table"},
	}
	for _, tt := range tests {
		if got := tt.act.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.act, got, tt.want)
		}
	}
}

func TestEnterTableShowsButtons(t *testing.T) {
	f := newFixture(t)

	f.btns.EnterTable(f.tbl.Node())

	if !f.btns.Visible() {
		t.Fatal("buttons not visible after EnterTable")
	}
	if got := f.floats.CountKind(floating.KindButton); got != 3 {
		t.Fatalf("buttons = %d, want 3", got)
	}

	// Right-middle, bottom-middle, and top-right placements.
	tests := []struct {
		at   geometry.Point
		want Action
	}{
		{geometry.Point{X: 170, Y: 30}, ActionAddColumn},
		{geometry.Point{X: 85, Y: 60}, ActionAddRow},
		{geometry.Point{X: 150, Y: -5}, ActionDeleteTable},
	}
	for _, tt := range tests {
		act, ok := f.btns.ButtonAt(tt.at)
		if !ok || act != tt.want {
			t.Errorf("ButtonAt(%+v) = %v ok=%v, want %v", tt.at, act, ok, tt.want)
		}
	}
	if _, ok := f.btns.ButtonAt(geometry.Point{X: 80, Y: 30}); ok {
		t.Error("ButtonAt() = true inside the table body")
	}
}

func TestLeaveHidesAfterDelay(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	f.btns.Leave()
	if !f.btns.Visible() {
		t.Fatal("buttons hidden immediately on Leave")
	}

	f.clock.Advance(150 * time.Millisecond)
	if !f.btns.Visible() {
		t.Fatal("buttons hidden before the full delay")
	}

	f.clock.Advance(150 * time.Millisecond)
	if f.btns.Visible() {
		t.Error("buttons still visible after the hide delay")
	}
	if f.floats.Count() != 0 {
		t.Errorf("floating elements = %d, want 0", f.floats.Count())
	}
}

func TestCancelHideKeepsButtons(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	f.btns.Leave()
	f.btns.CancelHide()
	f.clock.Advance(time.Second)

	if !f.btns.Visible() {
		t.Error("buttons hidden despite CancelHide")
	}
}

func TestReenterCancelsPendingHide(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	f.btns.Leave()
	f.btns.EnterTable(f.tbl.Node())
	f.clock.Advance(time.Second)

	if !f.btns.Visible() {
		t.Error("re-entering the table did not cancel the pending hide")
	}
	if got := f.floats.CountKind(floating.KindButton); got != 3 {
		t.Errorf("buttons = %d, want 3 (no duplicates)", got)
	}
}

func TestPressAddColumn(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	if !f.btns.Press(geometry.Point{X: 170, Y: 30}) {
		t.Fatal("press on add-column not consumed")
	}

	if got := f.tbl.VisualColumns(); got != 4 {
		t.Errorf("VisualColumns() = %d, want 4", got)
	}
	widths, _ := f.tbl.OverlayWidths(0)
	if len(widths) != 4 || widths[3] != 30 {
		t.Errorf("overlay = %v, want appended min-width entry", widths)
	}
	// The table grew; the button tracks the new right edge.
	act, ok := f.btns.ButtonAt(geometry.Point{X: 200, Y: 30})
	if !ok || act != ActionAddColumn {
		t.Errorf("add-column not repositioned: ButtonAt = %v ok=%v", act, ok)
	}
}

func TestPressAddRow(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	f.btns.Press(geometry.Point{X: 85, Y: 60})

	if got := len(f.tbl.Rows()); got != 3 {
		t.Errorf("rows = %d, want 3", got)
	}
	if got := dom.Text(f.tbl.Rows()[2]); got != "" {
		t.Errorf("appended row = %q, want empty", got)
	}
}

func TestPressDeleteTable(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	f.btns.Press(geometry.Point{X: 150, Y: -5})

	if len(dom.FindAll(f.body, "table")) != 0 {
		t.Error("table still attached")
	}
	if f.btns.Visible() || f.floats.Count() != 0 {
		t.Error("buttons survived table deletion")
	}
	if f.rec.Drains != 1 {
		t.Errorf("Drains = %d, want 1", f.rec.Drains)
	}
}

func TestPressOffButton(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	if f.btns.Press(geometry.Point{X: 80, Y: 30}) {
		t.Error("press inside the table consumed as a button press")
	}
}

func TestRepositionFollowsResize(t *testing.T) {
	f := newFixture(t)
	f.btns.EnterTable(f.tbl.Node())

	f.tbl.SetColumnWidth(0, 90)
	f.btns.Reposition()

	// Right edge moved from 160 to 210.
	act, ok := f.btns.ButtonAt(geometry.Point{X: 220, Y: 30})
	if !ok || act != ActionAddColumn {
		t.Errorf("ButtonAt after resize = %v ok=%v, want add-column", act, ok)
	}
	if _, ok := f.btns.ButtonAt(geometry.Point{X: 170, Y: 30}); ok {
		t.Error("stale button position still hit-tests")
	}
}

func TestEnterDifferentTableReplaces(t *testing.T) {
	f := newFixture(t)
	second, _ := dom.ParseBody(`<table><tr><td>x</td></tr></table>`)
	tbl2 := dom.FindAll(second, "table")[0]
	f.meas.SetOrigin(tbl2, geometry.Point{X: 300, Y: 300})

	f.btns.EnterTable(f.tbl.Node())
	f.btns.EnterTable(tbl2)

	if f.btns.Table() != tbl2 {
		t.Error("Table() does not track the latest entered table")
	}
	if got := f.floats.CountKind(floating.KindButton); got != 3 {
		t.Errorf("buttons = %d, want 3", got)
	}
}
