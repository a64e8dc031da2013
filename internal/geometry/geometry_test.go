package geometry

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	if got := r.Right(); got != 110 {
		t.Errorf("Right() = %d, want 110", got)
	}
	if got := r.Bottom(); got != 70 {
		t.Errorf("Bottom() = %d, want 70", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{50, 40}, true},
		{"top-left corner", Point{10, 20}, true},
		{"right edge inclusive", Point{110, 40}, true},
		{"bottom edge inclusive", Point{50, 70}, true},
		{"left of rect", Point{9, 40}, false},
		{"past right", Point{111, 40}, false},
		{"above", Point{50, 19}, false},
		{"below", Point{50, 71}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointDelta(t *testing.T) {
	d := Point{X: 130, Y: 80}.Delta(Point{X: 100, Y: 100})
	if d.X != 30 || d.Y != -20 {
		t.Errorf("Delta() = %+v, want {30 -20}", d)
	}
}

func TestRectIsEmpty(t *testing.T) {
	if (Rect{Width: 10, Height: 10}).IsEmpty() {
		t.Error("IsEmpty() = true for non-empty rect")
	}
	if !(Rect{Width: 0, Height: 10}).IsEmpty() {
		t.Error("IsEmpty() = false for zero-width rect")
	}
}
