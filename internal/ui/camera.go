package ui

import "github.com/samdwyer/dungeonlayout/internal/world"

// Camera maps world cells to screen cells. One tile is one column.
type Camera struct {
	Offset world.Point // world cell drawn at the top-left of the view
	Width  int
	Height int
}

// CenterOn moves the camera so c sits in the middle of the view.
func (c *Camera) CenterOn(p world.Point) {
	c.Offset = world.Point{X: p.X - c.Width/2, Y: p.Y - c.Height/2}
}

// Pan moves the camera by d cells.
func (c *Camera) Pan(d world.Point) {
	c.Offset = c.Offset.Add(d)
}

// ToScreen converts a world cell to screen coordinates. visible is false
// when the cell is outside the view.
func (c *Camera) ToScreen(p world.Point) (x, y int, visible bool) {
	x, y = p.X-c.Offset.X, p.Y-c.Offset.Y
	return x, y, x >= 0 && x < c.Width && y >= 0 && y < c.Height
}
