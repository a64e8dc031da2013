// Package dom provides helpers for working with golang.org/x/net/html node
// trees: element construction, attribute and inline-style access, pixel value
// parsing, and structural traversal.
//
// The host editor owns the document; this package never allocates documents of
// its own. All mutation helpers operate on nodes in place.
package dom
