package host

import (
	"errors"
	"testing"

	"github.com/dshills/tablestorm/internal/dom"
)

func TestRecorderRoot(t *testing.T) {
	r := NewRecorder(nil)
	if r.Root() == nil || !dom.IsElement(r.Root(), "body") {
		t.Error("NewRecorder(nil) did not create a body root")
	}

	custom := dom.NewElement("div")
	if got := NewRecorder(custom).Root(); got != custom {
		t.Error("NewRecorder did not keep the supplied root")
	}
}

func TestRecorderCommands(t *testing.T) {
	r := NewRecorder(nil)

	called := false
	if err := r.RegisterCommand("table.insertTable", func(map[string]any) { called = true }); err != nil {
		t.Fatalf("RegisterCommand() error = %v", err)
	}

	err := r.RegisterCommand("table.insertTable", func(map[string]any) {})
	if !errors.Is(err, ErrCommandExists) {
		t.Errorf("duplicate RegisterCommand() error = %v, want ErrCommandExists", err)
	}

	fn, ok := r.Command("table.insertTable")
	if !ok {
		t.Fatal("Command() did not find registered handler")
	}
	fn(nil)
	if !called {
		t.Error("registered handler not invoked")
	}
}

func TestRecorderInsertMarkup(t *testing.T) {
	r := NewRecorder(nil)

	if err := r.InsertMarkup(`<table><tr><td>x</td></tr></table>`); err != nil {
		t.Fatalf("InsertMarkup() error = %v", err)
	}
	if len(r.Markups) != 1 {
		t.Errorf("Markups recorded = %d, want 1", len(r.Markups))
	}
	if got := len(dom.FindAll(r.Root(), "table")); got != 1 {
		t.Errorf("tables in root = %d, want 1", got)
	}
}

func TestResyncSwallowsFailures(t *testing.T) {
	r := NewRecorder(nil)
	r.FailDrains = true

	// Failing drains and nil adapters must both be silent.
	NewResync(r, nil).Drain()
	NewResync(nil, nil).Drain()

	if r.Drains != 0 {
		t.Errorf("Drains = %d, want 0 for failing adapter", r.Drains)
	}
}

func TestResyncDrains(t *testing.T) {
	r := NewRecorder(nil)
	rs := NewResync(r, nil)

	rs.Drain()
	rs.Drain()
	if r.Drains != 2 {
		t.Errorf("Drains = %d, want 2", r.Drains)
	}
}
