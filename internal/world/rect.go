package world

// Rect describes a room by its corner coordinates. The row y1 and column x1
// are the room's own wall; the floor spans x1+1..x2 and y1+1..y2 inclusive.
type Rect struct {
	X1, Y1 int
	X2, Y2 int
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains returns true if the point lies on the room's floor.
func (r Rect) Contains(x, y int) bool {
	return x > r.X1 && x <= r.X2 && y > r.Y1 && y <= r.Y2
}

// Intersects returns true if this rectangle overlaps another. Bounds are
// inclusive, so rectangles that merely touch also intersect; together with the
// wall row and column every Rect carries this keeps at least one wall cell
// between the floors of two accepted rooms.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 &&
		r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 &&
		r.Y2 >= other.Y1
}
