// Package tablestorm makes HTML tables in a host rich-text editor
// drag-resizable and structurally editable. The host supplies its document
// as a live golang.org/x/net/html node tree plus a geometry measurer; the
// editor interprets pointer events into column/row/table resizes, opens a
// context menu of structural edits on secondary click, and shows quick-action
// buttons while a table is hovered. Structural edits keep the host's content
// model in sync by draining its mutation records after every direct DOM edit.
package tablestorm

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/drag"
	"github.com/dshills/tablestorm/internal/edge"
	"github.com/dshills/tablestorm/internal/floating"
	"github.com/dshills/tablestorm/internal/geometry"
	"github.com/dshills/tablestorm/internal/host"
	"github.com/dshills/tablestorm/internal/hover"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/menu"
	"github.com/dshills/tablestorm/internal/mutate"
	"github.com/dshills/tablestorm/internal/pointer"
	"github.com/dshills/tablestorm/internal/sched"
	"github.com/dshills/tablestorm/internal/script"
)

// Key identifies a keyboard key the editor reacts to.
type Key uint8

const (
	// KeyNone is the zero key.
	KeyNone Key = iota
	// KeyEscape dismisses an open context menu.
	KeyEscape
)

// Editor is one attachment of the extension to a host document. All methods
// are safe for use from a single host event loop; cross-goroutine hosts
// should serialize calls or route scheduler callbacks through a dispatch
// function (see sched.WithDispatch).
type Editor struct {
	mu sync.Mutex

	cfg      config.Config
	log      *logging.Logger
	adapter  host.Adapter
	resync   *host.Resync
	root     *html.Node
	measurer geometry.Measurer
	clock    sched.Scheduler
	script   *script.Engine

	floats   *floating.Manager
	reader   *geometry.Reader
	detector *edge.Detector
	drag     *drag.Controller
	mut      *mutate.Mutator
	menu     *menu.Menu
	hover    *hover.Buttons

	cursor string
	closed bool
}

// New attaches the editor to a host.
func New(adapter host.Adapter, opts ...Option) (*Editor, error) {
	if adapter == nil {
		return nil, host.ErrNoAdapter
	}
	root := adapter.Root()
	if root == nil {
		return nil, ErrNoRoot
	}

	e := &Editor{
		cfg:     config.DefaultConfig(),
		log:     logging.Nop(),
		adapter: adapter,
		root:    root,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg = e.cfg.Normalize()
	if e.measurer == nil {
		e.measurer = geometry.NewGridMeasurer(e.cfg.MinColumnWidth, e.cfg.MinRowHeight)
	}
	if e.clock == nil {
		e.clock = sched.NewTimerScheduler()
	}

	e.resync = host.NewResync(adapter, e.log)
	e.floats = floating.NewManager(root)
	e.reader = geometry.NewReader(e.measurer, e.cfg.MinColumnWidth, e.cfg.MinRowHeight)
	e.detector = edge.NewDetector(root, e.measurer, e.cfg.HandleSize)
	e.drag = drag.NewController(e.cfg, e.reader, e.floats, root, e.log)
	e.mut = mutate.NewMutator(e.cfg, e.resync, e.log)
	e.menu = menu.New(e.floats, e.mut, e.clock, e.runScriptCommand, e.log)
	e.hover = hover.New(e.cfg, e.floats, e.measurer, e.mut, e.clock, e.log)

	e.registerCommands()
	return e, nil
}

// SetViewport tells the editor the size of the host's visible area, used to
// size the drag shield.
func (e *Editor) SetViewport(rect geometry.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag.SetViewport(rect)
}

// HandlePointer is the single entry point for host pointer events.
func (e *Editor) HandlePointer(ev pointer.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	p := ev.Position

	switch {
	case ev.IsSecondaryPress():
		e.openMenu(p)

	case ev.Action == pointer.ActionPress && ev.Button == pointer.ButtonPrimary:
		if e.menu.HandlePress(p) {
			return
		}
		if e.hover.Press(p) {
			return
		}
		if hit, ok := e.detector.Detect(p); ok {
			e.setCursor("")
			e.drag.Begin(hit, p)
		}

	case ev.Action == pointer.ActionMove || ev.Action == pointer.ActionDrag:
		if e.drag.Dragging() {
			e.drag.Update(p)
			return
		}
		e.updateCursor(p)
		e.updateHover(p)

	case ev.Action == pointer.ActionRelease:
		e.drag.End()
	}
}

// HandleKey routes keyboard input. Only Escape is meaningful: it dismisses
// an open context menu.
func (e *Editor) HandleKey(k Key) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || k != KeyEscape {
		return false
	}
	return e.menu.HandleEscape()
}

// HandleScroll repositions visible affordances after the host scrolled or
// reflowed.
func (e *Editor) HandleScroll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.hover.Reposition()
}

// Close tears the attachment down: ends any drag, dismisses the menu, hides
// affordances, and removes every floating element. Idempotent.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.drag.Abort()
	e.menu.Close()
	e.hover.Hide()
	e.floats.Clear()
	e.setCursor("")
	if e.script != nil {
		e.script.Close()
	}
	e.closed = true
	e.log.Debugf("editor closed")
}

// openMenu opens the context menu for the cell under the pointer.
func (e *Editor) openMenu(p geometry.Point) {
	cell, _, ok := e.detector.CellAt(p)
	if !ok {
		e.menu.Close()
		return
	}
	t, ok := htmlTableOf(cell)
	if !ok {
		return
	}
	e.menu.Open(t, cell, p, e.scriptExtras())
}

// updateCursor maintains the resize cursor hint class on the editable root.
func (e *Editor) updateCursor(p geometry.Point) {
	class := ""
	if hit, ok := e.detector.Detect(p); ok {
		class = hit.Kind.CursorClass()
	}
	e.setCursor(class)
}

func (e *Editor) setCursor(class string) {
	if class == e.cursor {
		return
	}
	if e.cursor != "" {
		dom.RemoveClass(e.root, e.cursor)
	}
	if class != "" {
		dom.AddClass(e.root, class)
	}
	e.cursor = class
}

// updateHover keeps the hover buttons in sync with the table under the
// pointer.
func (e *Editor) updateHover(p geometry.Point) {
	if _, ok := e.hover.ButtonAt(p); ok {
		e.hover.CancelHide()
		return
	}
	if table, ok := e.detector.TableAt(p); ok {
		e.hover.EnterTable(table)
		return
	}
	e.hover.Leave()
}

// scriptExtras collects script-contributed menu entries.
func (e *Editor) scriptExtras() []menu.Extra {
	if e.script == nil {
		return nil
	}
	items := e.script.MenuItems()
	extras := make([]menu.Extra, 0, len(items))
	for _, it := range items {
		extras = append(extras, menu.Extra{Label: it.Label, Command: it.Command})
	}
	return extras
}

// runScriptCommand dispatches a script-registered command from a menu extra.
func (e *Editor) runScriptCommand(name string, args map[string]any) {
	if e.script == nil {
		return
	}
	if err := e.script.Invoke(name, args); err != nil {
		e.log.Warnf("%v", err)
	}
}

// htmlTableOf returns the <table> ancestor element of a cell.
func htmlTableOf(cell *html.Node) (*html.Node, bool) {
	t := dom.Closest(cell, "table")
	return t, t != nil
}
