package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/logging"
)

// sampleHTML is the document opened when no file is given.
const sampleHTML = `<p>Drag cell borders to resize. Right-click a cell for the menu.</p>
<table><tbody>
<tr><td>Name</td><td>Role</td><td>Location</td></tr>
<tr><td>Mika</td><td>Editor</td><td>Oslo</td></tr>
<tr><td>Sam</td><td>Review</td><td>Lyon</td></tr>
</tbody></table>
<p>Press t to insert another table, q to quit.</p>`

// App is the demo host: one tcell screen, one document, one editor.
type App struct {
	screen  tcell.Screen
	editor  *tablestorm.Editor
	log     *logging.Logger
	body    *html.Node
	meas    *tablestorm.GridMeasurer
	adapter *docAdapter
	cfg     tablestorm.Config
	buttons tcell.ButtonMask
}

func newApp(opts options, log *logging.Logger) (*App, error) {
	cfg := demoConfig()
	if opts.ConfigPath != "" {
		loaded, err := tablestorm.LoadConfig(opts.ConfigPath)
		if err != nil {
			log.Warnf("config: %v", err)
		} else {
			cfg = loaded
		}
	}

	src := sampleHTML
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, err
		}
		src = string(data)
	}
	body, err := dom.ParseBody(src)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	meas := tablestorm.NewGridMeasurer(cfg.MinColumnWidth, cfg.MinRowHeight)
	app := &App{
		log:     log,
		body:    body,
		meas:    meas,
		adapter: &docAdapter{root: body, commands: map[string]tablestorm.CommandFunc{}},
		cfg:     cfg,
	}
	app.sizeTables()

	editorOpts := []tablestorm.Option{
		tablestorm.WithConfig(cfg),
		tablestorm.WithMeasurer(meas),
		tablestorm.WithLogger(log),
	}
	eng, err := loadScript(opts, log)
	if err != nil {
		return nil, err
	}
	if eng != nil {
		editorOpts = append(editorOpts, tablestorm.WithScript(eng))
	}

	app.editor, err = tablestorm.New(app.adapter, editorOpts...)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	app.screen = screen

	w, h := screen.Size()
	app.editor.SetViewport(tablestorm.Rect{Width: w, Height: h})
	return app, nil
}

// Shutdown releases the terminal and the editor.
func (a *App) Shutdown() {
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
	a.editor.Close()
}

// Run drives the event loop until quit.
func (a *App) Run() error {
	for {
		a.layout()
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
			w, h := a.screen.Size()
			a.editor.SetViewport(tablestorm.Rect{Width: w, Height: h})
			a.editor.HandleScroll()

		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape:
				a.editor.HandleKey(tablestorm.KeyEscape)
			case ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				return nil
			case ev.Rune() == 't':
				if err := a.editor.InsertTable(0, 0); err != nil {
					a.log.Warnf("insert table: %v", err)
				}
				a.sizeTables()
			}

		case *tcell.EventMouse:
			a.handleMouse(ev)

		case nil:
			return nil
		}
	}
}

// handleMouse translates a tcell mouse event into a pointer event. Button
// transitions against the previous mask distinguish press, drag, and release.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btns := ev.Buttons() & tcell.ButtonMask(0xff)
	prev := a.buttons
	a.buttons = btns

	pe := tablestorm.PointerEvent{
		Position:  tablestorm.Point{X: x, Y: y},
		Modifiers: convertMods(ev.Modifiers()),
		Timestamp: ev.When(),
	}

	switch {
	case btns&tcell.ButtonPrimary != 0 && prev&tcell.ButtonPrimary == 0:
		pe.Action, pe.Button = tablestorm.ActionPress, tablestorm.ButtonPrimary
	case btns&tcell.ButtonSecondary != 0 && prev&tcell.ButtonSecondary == 0:
		pe.Action, pe.Button = tablestorm.ActionPress, tablestorm.ButtonSecondary
	case btns&tcell.ButtonPrimary != 0:
		pe.Action, pe.Button = tablestorm.ActionDrag, tablestorm.ButtonPrimary
	case prev&tcell.ButtonPrimary != 0:
		pe.Action, pe.Button = tablestorm.ActionRelease, tablestorm.ButtonPrimary
	case btns == 0:
		pe.Action = tablestorm.ActionMove
	default:
		return
	}
	a.editor.HandlePointer(pe)
}

func convertMods(m tcell.ModMask) tablestorm.PointerModifier {
	var out tablestorm.PointerModifier
	if m&tcell.ModShift != 0 {
		out |= tablestorm.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= tablestorm.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= tablestorm.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= tablestorm.ModMeta
	}
	return out
}

// sizeTables gives every overlay-less table content-based column widths so
// the grid renders readably before any manual resize.
func (a *App) sizeTables() {
	for _, table := range dom.FindAll(a.body, "table") {
		t, ok := htmltable.FromNode(table)
		if !ok || t.HasOverlay() {
			continue
		}
		widths := make([]int, t.VisualColumns())
		for _, row := range t.Rows() {
			for i, cell := range htmltable.RowCells(row) {
				if i >= len(widths) {
					break
				}
				if w := cellWidth(cell) + 2; w > widths[i] {
					widths[i] = w
				}
			}
		}
		for i, w := range widths {
			if w < a.cfg.MinColumnWidth {
				widths[i] = a.cfg.MinColumnWidth
			}
		}
		t.EnsureOverlay(widths)
	}
}

// layout assigns table origins top to bottom in document order, leaving room
// for the text content between them.
func (a *App) layout() {
	y := 1
	for _, el := range dom.ElementChildren(a.body) {
		switch {
		case dom.IsElement(el, "table"):
			a.meas.SetOrigin(el, tablestorm.Point{X: 1, Y: y})
			if rect, ok := a.meas.TableRect(el); ok {
				y += rect.Height
			}
			y += 2
		case dom.IsElement(el, "p"):
			y += 2
		}
	}
}

// docAdapter is the demo's host adapter: the document root is the parsed
// body, inserted markup is appended to it, and drains are a no-op because
// the demo has no asynchronous reconciliation.
type docAdapter struct {
	root     *html.Node
	commands map[string]tablestorm.CommandFunc
}

func (d *docAdapter) Root() *html.Node {
	return d.root
}

func (d *docAdapter) RegisterCommand(name string, fn tablestorm.CommandFunc) error {
	if _, ok := d.commands[name]; ok {
		return fmt.Errorf("command %s already registered", name)
	}
	d.commands[name] = fn
	return nil
}

func (d *docAdapter) InsertMarkup(markup string) error {
	parsed, err := dom.ParseBody(markup)
	if err != nil {
		return err
	}
	for _, el := range dom.ElementChildren(parsed) {
		dom.Detach(el)
		d.root.AppendChild(el)
	}
	return nil
}

func (d *docAdapter) DrainMutations() error {
	return nil
}
