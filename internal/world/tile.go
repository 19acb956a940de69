// Package world provides the grid primitives shared by the layout pipeline:
// points, cardinal directions, rectangles and a sparse tile map.
package world

// Tile represents a single map cell.
type Tile rune

const (
	// TileVoid is an unclaimed cell outside every room and corridor.
	TileVoid Tile = ' '
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileDoor is a doorway cut into a room wall.
	TileDoor Tile = '+'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileDoor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoor:
		return "door"
	default:
		return "void"
	}
}
