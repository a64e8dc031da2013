package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Style returns the value of a property from the inline style attribute.
func Style(n *html.Node, prop string) (string, bool) {
	raw, ok := Attr(n, "style")
	if !ok {
		return "", false
	}
	for _, decl := range strings.Split(raw, ";") {
		k, v, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), prop) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// SetStyle sets a property in the inline style attribute, replacing any
// existing declaration for the same property.
func SetStyle(n *html.Node, prop, val string) {
	raw, _ := Attr(n, "style")
	var decls []string
	for _, decl := range strings.Split(raw, ";") {
		k, _, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), prop) {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	decls = append(decls, prop+": "+val)
	SetAttr(n, "style", strings.Join(decls, "; "))
}

// RemoveStyle removes a property from the inline style attribute. The style
// attribute itself is removed when it becomes empty.
func RemoveStyle(n *html.Node, prop string) {
	raw, ok := Attr(n, "style")
	if !ok {
		return
	}
	var decls []string
	for _, decl := range strings.Split(raw, ";") {
		k, _, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), prop) {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", strings.Join(decls, "; "))
}

// ParsePx parses a pixel length such as "120px" (bare numbers accepted).
func ParsePx(s string) (int, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// FormatPx formats a pixel length for inline styles.
func FormatPx(v int) string {
	return strconv.Itoa(v) + "px"
}

// StylePx returns a style property parsed as a pixel length.
func StylePx(n *html.Node, prop string) (int, bool) {
	s, ok := Style(n, prop)
	if !ok {
		return 0, false
	}
	return ParsePx(s)
}

// SetStylePx sets a style property to a pixel length.
func SetStylePx(n *html.Node, prop string, v int) {
	SetStyle(n, prop, FormatPx(v))
}

// FindAllClass returns every element under root carrying the class, in
// document order.
func FindAllClass(root *html.Node, name string) []*html.Node {
	if root == nil {
		return nil
	}
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && HasClass(c, name) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// HasClass reports whether the element's class attribute contains name.
func HasClass(n *html.Node, name string) bool {
	raw, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(raw) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the element's class attribute if absent.
func AddClass(n *html.Node, name string) {
	if HasClass(n, name) {
		return
	}
	raw, ok := Attr(n, "class")
	if !ok || raw == "" {
		SetAttr(n, "class", name)
		return
	}
	SetAttr(n, "class", raw+" "+name)
}

// RemoveClass removes name from the element's class attribute.
func RemoveClass(n *html.Node, name string) {
	raw, ok := Attr(n, "class")
	if !ok {
		return
	}
	fields := strings.Fields(raw)
	out := fields[:0]
	for _, c := range fields {
		if c != name {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(out, " "))
}
