package world

import "strings"

// TileMap is a sparse tile grid in world space. World coordinates may be
// negative, so cells live in a map and the covered area is tracked as a
// bounding rectangle.
type TileMap struct {
	tiles  map[Point]Tile
	bounds Rect
}

// NewTileMap creates an empty tile map.
func NewTileMap() *TileMap {
	return &TileMap{tiles: make(map[Point]Tile)}
}

// Set replaces the tile at p. Setting TileVoid removes the cell.
func (m *TileMap) Set(p Point, t Tile) {
	if t == TileVoid {
		delete(m.tiles, p)
		return
	}
	m.tiles[p] = t
	m.bounds = m.bounds.Union(Rect{X: p.X, Y: p.Y, Width: 1, Height: 1})
}

// GetTile returns the tile at p, or TileVoid if nothing was placed there.
func (m *TileMap) GetTile(p Point) Tile {
	if t, ok := m.tiles[p]; ok {
		return t
	}
	return TileVoid
}

// IsPassable returns true if the given position can be walked on.
func (m *TileMap) IsPassable(p Point) bool {
	return m.GetTile(p).IsPassable()
}

// Bounds returns the rectangle covering every placed tile.
func (m *TileMap) Bounds() Rect {
	return m.bounds
}

// Len returns the number of non-void cells.
func (m *TileMap) Len() int {
	return len(m.tiles)
}

// Count returns how many cells hold tile t.
func (m *TileMap) Count(t Tile) int {
	n := 0
	for _, v := range m.tiles {
		if v == t {
			n++
		}
	}
	return n
}

// StampRoom paints a room footprint: a wall ring around a floor interior.
func (m *TileMap) StampRoom(r Rect) {
	r.Each(func(p Point) {
		if r.OnBorder(p) {
			m.Set(p, TileWall)
		} else {
			m.Set(p, TileFloor)
		}
	})
}

// String renders the map as ASCII rows covering Bounds.
func (m *TileMap) String() string {
	var sb strings.Builder
	b := m.bounds
	for y := b.Y; y < b.Bottom(); y++ {
		for x := b.X; x < b.Right(); x++ {
			sb.WriteRune(m.GetTile(Point{x, y}).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
