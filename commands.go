package tablestorm

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom/htmltable"
	"github.com/dshills/tablestorm/internal/mutate"
)

// Default dimensions for InsertTable when the caller passes non-positive
// values.
const (
	defaultTableRows = 3
	defaultTableCols = 3
)

// InsertTable builds table markup and inserts it at the host's current
// cursor position, then drains the host's mutation records.
func (e *Editor) InsertTable(rows, cols int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if rows <= 0 {
		rows = defaultTableRows
	}
	if cols <= 0 {
		cols = defaultTableCols
	}

	if err := e.adapter.InsertMarkup(htmltable.Markup(rows, cols)); err != nil {
		return &OperationError{Op: "insert table", Err: err}
	}
	e.resync.Drain()
	e.log.Infof("inserted %dx%d table", rows, cols)
	return nil
}

// InsertColumn splices a new column into every row of the table.
func (e *Editor) InsertColumn(table *html.Node, index int, placement Placement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.mut.InsertColumn(table, index, placement)
}

// DeleteColumn removes a column. The last column is never removed.
func (e *Editor) DeleteColumn(table *html.Node, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.mut.DeleteColumn(table, index)
}

// InsertRow inserts a new empty row into the table.
func (e *Editor) InsertRow(table *html.Node, index int, placement Placement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.mut.InsertRow(table, index, placement)
}

// DeleteRow removes a row. The last row is never removed.
func (e *Editor) DeleteRow(table *html.Node, index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.mut.DeleteRow(table, index)
}

// DeleteTable removes the whole table from the document.
func (e *Editor) DeleteTable(table *html.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.mut.DeleteTable(table)
}

// registerCommands exposes the structural operations to the host's toolbar
// under table.* names. Name collisions are logged and skipped.
func (e *Editor) registerCommands() {
	commands := map[string]CommandFunc{
		"table.insert": func(args map[string]any) {
			rows := argInt(args, "rows", defaultTableRows)
			cols := argInt(args, "cols", defaultTableCols)
			if err := e.InsertTable(rows, cols); err != nil {
				e.log.Warnf("table.insert: %v", err)
			}
		},
		"table.insertColumn": func(args map[string]any) {
			if t, ok := argTable(args); ok {
				e.InsertColumn(t, argInt(args, "index", 0), argPlacement(args))
			}
		},
		"table.deleteColumn": func(args map[string]any) {
			if t, ok := argTable(args); ok {
				e.DeleteColumn(t, argInt(args, "index", 0))
			}
		},
		"table.insertRow": func(args map[string]any) {
			if t, ok := argTable(args); ok {
				e.InsertRow(t, argInt(args, "index", 0), argPlacement(args))
			}
		},
		"table.deleteRow": func(args map[string]any) {
			if t, ok := argTable(args); ok {
				e.DeleteRow(t, argInt(args, "index", 0))
			}
		},
		"table.deleteTable": func(args map[string]any) {
			if t, ok := argTable(args); ok {
				e.DeleteTable(t)
			}
		},
	}
	for name, fn := range commands {
		if err := e.adapter.RegisterCommand(name, fn); err != nil {
			e.log.Warnf("register %s: %v", name, err)
		}
	}
}

func argTable(args map[string]any) (*html.Node, bool) {
	t, ok := args["table"].(*html.Node)
	return t, ok && t != nil
}

func argInt(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func argPlacement(args map[string]any) Placement {
	if s, ok := args["placement"].(string); ok && s == "before" {
		return mutate.Before
	}
	return mutate.After
}
