// Package geometry provides the spatial vocabulary for table editing: points
// and rectangles in document pixels, a Measurer abstraction over the host's
// layout, and the reader that extracts column widths, row heights, and table
// dimensions from live measurements.
package geometry

// Point is a position in document pixels.
type Point struct {
	X int
	Y int
}

// Delta returns the componentwise difference p - other.
func (p Point) Delta(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Rect is an axis-aligned rectangle in document pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether p lies within the rectangle. The right and bottom
// edges are inclusive so edge hit zones on boundary pixels still resolve to
// the cell they border.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}
