package world

// Size is the width and height of a room footprint in cells.
type Size struct {
	Width, Height int
}

// Rect represents a rectangular footprint in world space.
type Rect struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the footprint
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// OnBorder reports whether p lies on the outermost ring of the rectangle.
func (r Rect) OnBorder(p Point) bool {
	if !r.Contains(p) {
		return false
	}
	return p.X == r.X || p.X == r.Right()-1 || p.Y == r.Y || p.Y == r.Bottom()-1
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Each calls fn for every cell of the rectangle in row-major order.
func (r Rect) Each(fn func(Point)) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			fn(Point{x, y})
		}
	}
}

// RectAround returns a rectangle of the given size centered on c, using the
// same rounding as Center so that RectAround(c, s).Center() == c.
func RectAround(c Point, s Size) Rect {
	return Rect{X: c.X - s.Width/2, Y: c.Y - s.Height/2, Width: s.Width, Height: s.Height}
}

// Union returns the smallest rectangle covering both r and o. An empty
// rectangle is treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r.Width == 0 || r.Height == 0 {
		return o
	}
	if o.Width == 0 || o.Height == 0 {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
