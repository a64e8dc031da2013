package floating

import (
	"testing"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/geometry"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindMenu, "menu"},
		{KindMenuItem, "menu-item"},
		{KindButton, "button"},
		{KindShield, "shield"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAddAttachesToBody(t *testing.T) {
	body := dom.NewElement("body")
	m := NewManager(body)

	el := m.Add(KindMenu, "ts-context-menu", geometry.Rect{X: 10, Y: 20, Width: 160, Height: 120})

	if el.ID() == "" {
		t.Error("element has empty ID")
	}
	if el.Kind() != KindMenu {
		t.Errorf("Kind() = %v, want KindMenu", el.Kind())
	}
	if !dom.IsAttached(body, el.Node()) {
		t.Error("element not attached to body")
	}
	if !dom.HasClass(el.Node(), "ts-context-menu") {
		t.Error("element missing class hook")
	}
	if pos, _ := dom.Style(el.Node(), "position"); pos != "absolute" {
		t.Errorf("position = %q, want absolute", pos)
	}
	if got := el.Rect(); got != (geometry.Rect{X: 10, Y: 20, Width: 160, Height: 120}) {
		t.Errorf("Rect() = %+v", got)
	}
}

func TestMove(t *testing.T) {
	m := NewManager(dom.NewElement("body"))
	el := m.Add(KindButton, "ts-table-button", geometry.Rect{X: 0, Y: 0, Width: 20, Height: 20})

	m.Move(el, geometry.Rect{X: 100, Y: 50, Width: 20, Height: 20})
	if got := el.Rect(); got.X != 100 || got.Y != 50 {
		t.Errorf("Rect() after Move = %+v", got)
	}

	m.Move(nil, geometry.Rect{}) // must not panic
}

func TestRemoveAndClear(t *testing.T) {
	body := dom.NewElement("body")
	m := NewManager(body)

	menu := m.Add(KindMenu, "ts-context-menu", geometry.Rect{})
	b1 := m.Add(KindButton, "ts-table-button", geometry.Rect{})
	b2 := m.Add(KindButton, "ts-table-button", geometry.Rect{})

	if m.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", m.Count())
	}

	m.Remove(menu)
	if dom.IsAttached(body, menu.Node()) {
		t.Error("removed element still attached")
	}
	m.Remove(menu) // double remove is a no-op

	if m.CountKind(KindButton) != 2 {
		t.Errorf("CountKind(button) = %d, want 2", m.CountKind(KindButton))
	}

	m.RemoveKind(KindButton)
	if m.Count() != 0 {
		t.Errorf("Count() after RemoveKind = %d, want 0", m.Count())
	}
	if dom.IsAttached(body, b1.Node()) || dom.IsAttached(body, b2.Node()) {
		t.Error("buttons still attached after RemoveKind")
	}

	m.Add(KindShield, "ts-drag-shield", geometry.Rect{})
	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", m.Count())
	}
	if got := len(dom.ElementChildren(body)); got != 0 {
		t.Errorf("body children after Clear = %d, want 0", got)
	}
}

func TestAtPrefersTopmost(t *testing.T) {
	m := NewManager(dom.NewElement("body"))

	under := m.Add(KindMenu, "", geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	over := m.Add(KindShield, "", geometry.Rect{X: 0, Y: 0, Width: 200, Height: 200})

	el, ok := m.At(geometry.Point{X: 50, Y: 50})
	if !ok {
		t.Fatal("At() found nothing")
	}
	if el != over {
		t.Error("At() did not prefer the later (topmost) element")
	}

	m.Remove(over)
	el, ok = m.At(geometry.Point{X: 50, Y: 50})
	if !ok || el != under {
		t.Error("At() did not fall back to remaining element")
	}

	if _, ok := m.At(geometry.Point{X: 500, Y: 500}); ok {
		t.Error("At() matched a point outside every element")
	}
}
