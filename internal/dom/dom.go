package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// NewElement creates a detached element node with the given tag.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type: html.ElementNode,
		Data: tag,
		Attr: attrs,
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: text,
	}
}

// IsElement reports whether n is an element with the given tag name.
// Tag comparison is case-insensitive.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// IntAttr returns the named attribute parsed as a positive integer, or def
// when the attribute is absent or unparsable. Used for colspan/rowspan, which
// default to 1.
func IntAttr(n *html.Node, key string, def int) int {
	s, ok := Attr(n, key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// Closest returns n or its nearest ancestor with the given tag, or nil.
func Closest(n *html.Node, tag string) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if IsElement(cur, tag) {
			return cur
		}
	}
	return nil
}

// ElementChildren returns the element children of n in document order.
func ElementChildren(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenByTag returns the element children of n with the given tag.
func ChildrenByTag(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, tag) {
			out = append(out, c)
		}
	}
	return out
}

// FindAll returns every descendant element of root (root excluded) with the
// given tag, in document order.
func FindAll(root *html.Node, tag string) []*html.Node {
	if root == nil {
		return nil
	}
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if IsElement(c, tag) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// Detach removes n from its parent. No-op for detached nodes.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertChildAt inserts child among the element children of parent so that it
// becomes the index-th element child. Indices past the end append.
func InsertChildAt(parent, child *html.Node, index int) {
	Detach(child)
	elems := ElementChildren(parent)
	if index < 0 {
		index = 0
	}
	if index >= len(elems) {
		parent.AppendChild(child)
		return
	}
	parent.InsertBefore(child, elems[index])
}

// PrependChild inserts child as the first child of parent.
func PrependChild(parent, child *html.Node) {
	Detach(child)
	if parent.FirstChild != nil {
		parent.InsertBefore(child, parent.FirstChild)
		return
	}
	parent.AppendChild(child)
}

// ElementIndex returns the position of child among the element children of
// its parent, or -1 when detached.
func ElementIndex(child *html.Node) int {
	if child == nil || child.Parent == nil {
		return -1
	}
	idx := 0
	for c := child.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			return idx
		}
		if c.Type == html.ElementNode {
			idx++
		}
	}
	return -1
}

// IsAttached reports whether n is root or a descendant of root.
func IsAttached(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of n's subtree.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return b.String()
}
