// Package floating manages the transient UI elements the extension attaches
// directly to the document body: the context menu, hover buttons, and the
// drag shield. Elements are positioned absolutely from table bounding boxes
// and are always owned by exactly one Manager, which can tear all of them
// down at once.
package floating

import (
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/geometry"
)

// Kind identifies the role of a floating element.
type Kind uint8

const (
	// KindMenu is the context menu container.
	KindMenu Kind = iota
	// KindMenuItem is a single context menu entry.
	KindMenuItem
	// KindButton is a hover affordance button.
	KindButton
	// KindShield is the full-viewport drag shield.
	KindShield
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMenu:
		return "menu"
	case KindMenuItem:
		return "menu-item"
	case KindButton:
		return "button"
	case KindShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Element is a floating DOM element owned by a Manager.
type Element struct {
	id   string
	kind Kind
	node *html.Node
}

// ID returns the element's unique identifier.
func (e *Element) ID() string {
	return e.id
}

// Kind returns the element's role.
func (e *Element) Kind() Kind {
	return e.kind
}

// Node returns the underlying DOM element.
func (e *Element) Node() *html.Node {
	return e.node
}

// Rect returns the element's current position and size as written to its
// inline styles.
func (e *Element) Rect() geometry.Rect {
	x, _ := dom.StylePx(e.node, "left")
	y, _ := dom.StylePx(e.node, "top")
	w, _ := dom.StylePx(e.node, "width")
	h, _ := dom.StylePx(e.node, "height")
	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}

// Manager owns every live floating element for one editor instance.
type Manager struct {
	body     *html.Node
	elements map[string]*Element
}

// NewManager creates a manager appending elements to the given body.
func NewManager(body *html.Node) *Manager {
	return &Manager{
		body:     body,
		elements: make(map[string]*Element),
	}
}

// Add creates a floating <div> with the given class, positions it, appends
// it to the body, and returns it.
func (m *Manager) Add(kind Kind, class string, rect geometry.Rect) *Element {
	node := dom.NewElement("div")
	if class != "" {
		dom.AddClass(node, class)
	}
	dom.SetStyle(node, "position", "absolute")
	writeRect(node, rect)

	el := &Element{
		id:   uuid.New().String(),
		kind: kind,
		node: node,
	}
	dom.SetAttr(node, "data-tablestorm-id", el.id)
	m.body.AppendChild(node)
	m.elements[el.id] = el
	return el
}

// Move rewrites an element's position and size.
func (m *Manager) Move(el *Element, rect geometry.Rect) {
	if el == nil {
		return
	}
	writeRect(el.node, rect)
}

// Remove detaches an element and releases ownership. Unknown IDs are a
// no-op.
func (m *Manager) Remove(el *Element) {
	if el == nil {
		return
	}
	if _, ok := m.elements[el.id]; !ok {
		return
	}
	dom.Detach(el.node)
	delete(m.elements, el.id)
}

// RemoveKind removes every element of the given kind.
func (m *Manager) RemoveKind(kind Kind) {
	for _, el := range m.elements {
		if el.kind == kind {
			dom.Detach(el.node)
			delete(m.elements, el.id)
		}
	}
}

// Clear removes every floating element.
func (m *Manager) Clear() {
	for id, el := range m.elements {
		dom.Detach(el.node)
		delete(m.elements, id)
	}
}

// Count returns the number of live elements.
func (m *Manager) Count() int {
	return len(m.elements)
}

// CountKind returns the number of live elements of the given kind.
func (m *Manager) CountKind(kind Kind) int {
	n := 0
	for _, el := range m.elements {
		if el.kind == kind {
			n++
		}
	}
	return n
}

// At returns the topmost element whose rect contains p. Insertion order
// stands in for stacking order; later elements win.
func (m *Manager) At(p geometry.Point) (*Element, bool) {
	var found *Element
	for c := m.body.FirstChild; c != nil; c = c.NextSibling {
		id, ok := dom.Attr(c, "data-tablestorm-id")
		if !ok {
			continue
		}
		el, ok := m.elements[id]
		if !ok {
			continue
		}
		if el.Rect().Contains(p) {
			found = el
		}
	}
	if found == nil {
		return nil, false
	}
	return found, true
}

func writeRect(node *html.Node, rect geometry.Rect) {
	dom.SetStylePx(node, "left", rect.X)
	dom.SetStylePx(node, "top", rect.Y)
	dom.SetStylePx(node, "width", rect.Width)
	dom.SetStylePx(node, "height", rect.Height)
}
