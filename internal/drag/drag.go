// Package drag owns the resize session state machine. A session opens on
// pointer-down over a detected edge, snapshots all geometry so deltas apply
// against stable baselines, resizes live on every pointer move, and closes on
// pointer-up. There is no separate commit step and no cancel gesture; any
// interruption keeps the last applied sizes.
package drag

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/edge"
	"github.com/dshills/tablestorm/internal/floating"
	"github.com/dshills/tablestorm/internal/geometry"
	"github.com/dshills/tablestorm/internal/logging"
)

// Phase represents the controller's state.
type Phase uint8

const (
	// PhaseIdle means no resize session is active.
	PhaseIdle Phase = iota
	// PhaseDragging means a resize session is in progress.
	PhaseDragging
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	if p == PhaseDragging {
		return "dragging"
	}
	return "idle"
}

// Snapshot is the geometry baseline captured when a session opens. Deltas
// are always computed against it, never against cumulative live state.
type Snapshot struct {
	ColumnWidths []int
	RowHeights   []int
	TableWidth   int
	TableHeight  int
}

// Controller runs resize sessions. At most one session is active at a time.
type Controller struct {
	cfg    config.Config
	reader *geometry.Reader
	floats *floating.Manager
	root   *html.Node
	log    *logging.Logger

	viewport geometry.Rect

	phase  Phase
	hit    edge.Hit
	start  geometry.Point
	snap   Snapshot
	shield *floating.Element
}

// NewController creates a drag controller.
func NewController(cfg config.Config, reader *geometry.Reader, floats *floating.Manager, root *html.Node, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		cfg:    cfg,
		reader: reader,
		floats: floats,
		root:   root,
		log:    log,
	}
}

// SetViewport records the viewport rect the drag shield covers.
func (c *Controller) SetViewport(rect geometry.Rect) {
	c.viewport = rect
}

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Dragging reports whether a session is active.
func (c *Controller) Dragging() bool {
	return c.phase == PhaseDragging
}

// Begin opens a session for the given hit. Returns false when a session is
// already active or the hit is empty.
func (c *Controller) Begin(hit edge.Hit, start geometry.Point) bool {
	if c.phase == PhaseDragging || hit.Kind == edge.KindNone || hit.Table == nil {
		return false
	}
	t, ok := htmltable.FromNode(hit.Table)
	if !ok {
		return false
	}

	w, h := c.reader.TableSize(t)
	c.snap = Snapshot{
		ColumnWidths: c.reader.ColumnWidths(t),
		RowHeights:   c.reader.RowHeights(t),
		TableWidth:   w,
		TableHeight:  h,
	}
	c.hit = hit
	c.start = start
	c.raiseShield(hit.Kind)
	c.phase = PhaseDragging
	c.log.Debugf("drag started: %s col=%d row=%d", hit.Kind, hit.Col, hit.Row)
	return true
}

// Update applies the current pointer position to the session. A session
// whose table has left the document aborts silently.
func (c *Controller) Update(pos geometry.Point) {
	if c.phase != PhaseDragging {
		return
	}
	if !dom.IsAttached(c.root, c.hit.Table) {
		c.log.Debugf("drag aborted: table detached")
		c.finish()
		return
	}
	t, ok := htmltable.FromNode(c.hit.Table)
	if !ok {
		c.finish()
		return
	}

	delta := pos.Delta(c.start)
	switch c.hit.Kind {
	case edge.KindColumn:
		c.applyColumn(t, delta.X)
	case edge.KindRow:
		c.applyRow(t, delta.Y)
	case edge.KindCorner:
		c.applyColumn(t, delta.X)
		c.applyRow(t, delta.Y)
		c.clampTable(t)
	}
}

// End closes the session, keeping the last applied sizes.
func (c *Controller) End() {
	if c.phase != PhaseDragging {
		return
	}
	c.log.Debugf("drag finished")
	c.finish()
}

// Abort closes the session without further size changes. Cleanup is
// identical to End.
func (c *Controller) Abort() {
	if c.phase != PhaseDragging {
		return
	}
	c.finish()
}

// applyColumn resizes the single target column through the sizing overlay,
// clamped at the minimum column width. The overlay is created on first use
// from the snapshot widths so untouched columns keep their measured sizes.
func (c *Controller) applyColumn(t *htmltable.Table, dx int) {
	if c.hit.Col < 0 || c.hit.Col >= len(c.snap.ColumnWidths) {
		return
	}
	w := c.snap.ColumnWidths[c.hit.Col] + dx
	if w < c.cfg.MinColumnWidth {
		w = c.cfg.MinColumnWidth
	}
	t.EnsureOverlay(c.snap.ColumnWidths)
	t.SetColumnWidth(c.hit.Col, w)

	widths, _ := t.OverlayWidths(c.cfg.MinColumnWidth)
	total := 0
	for _, cw := range widths {
		total += cw
	}
	t.SetWidth(total)
}

// applyRow resizes the single target row as inline height, clamped at the
// minimum row height.
func (c *Controller) applyRow(t *htmltable.Table, dy int) {
	rows := t.Rows()
	if c.hit.Row < 0 || c.hit.Row >= len(rows) {
		return
	}
	h := c.snap.RowHeights[c.hit.Row] + dy
	if h < c.cfg.MinRowHeight {
		h = c.cfg.MinRowHeight
	}
	htmltable.SetRowHeight(rows[c.hit.Row], h)
}

// clampTable enforces the whole-table minimums after a corner drag.
func (c *Controller) clampTable(t *htmltable.Table) {
	if w := t.Width(0); w > 0 && w < c.cfg.MinTableWidth {
		t.SetWidth(c.cfg.MinTableWidth)
	}
	total := 0
	for _, row := range t.Rows() {
		total += htmltable.RowHeight(row, c.cfg.MinRowHeight)
	}
	if total < c.cfg.MinTableHeight {
		total = c.cfg.MinTableHeight
	}
	t.SetHeight(total)
}

// raiseShield covers the viewport with an invisible element that keeps the
// resize cursor visible and blocks text selection for the drag's duration.
func (c *Controller) raiseShield(kind edge.Kind) {
	rect := c.viewport
	if rect.IsEmpty() {
		rect = geometry.Rect{Width: 1 << 20, Height: 1 << 20}
	}
	c.shield = c.floats.Add(floating.KindShield, "ts-drag-shield", rect)
	if class := kind.CursorClass(); class != "" {
		dom.AddClass(c.shield.Node(), class)
	}
}

// finish performs the shared cleanup for End and Abort.
func (c *Controller) finish() {
	if c.shield != nil {
		c.floats.Remove(c.shield)
		c.shield = nil
	}
	c.hit = edge.Hit{}
	c.snap = Snapshot{}
	c.phase = PhaseIdle
}
