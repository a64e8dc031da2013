package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseBody parses an HTML document and returns its <body> element.
func ParseBody(src string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return Body(doc), nil
}

// Body returns the <body> element of a parsed document, or nil.
func Body(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if IsElement(doc, "body") {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if b := Body(c); b != nil {
			return b
		}
	}
	return nil
}

// Render serializes a node subtree to HTML. Render failures yield an empty
// string; serialization is only used for diagnostics and markup generation.
func Render(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
