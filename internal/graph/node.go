package graph

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeonlayout/internal/world"
)

// RoomNode holds a room's metadata. Its identity is its Position: two nodes
// are the same room iff their positions match, so neighbors are stored by
// position and survive a node being replaced with a different type.
type RoomNode struct {
	Position  world.Point
	Type      RoomType
	Neighbors mapset.Set[world.Point]
}

// NewRoomNode creates an unconnected node.
func NewRoomNode(pos world.Point, roomType RoomType) *RoomNode {
	return &RoomNode{
		Position:  pos,
		Type:      roomType,
		Neighbors: mapset.New[world.Point](),
	}
}

// AddNeighbor records target as reachable through one corridor.
func (n *RoomNode) AddNeighbor(target world.Point) {
	n.Neighbors.Put(target)
}

// HasNeighbor reports whether pos is a neighbor of n.
func (n *RoomNode) HasNeighbor(pos world.Point) bool {
	return n.Neighbors.Has(pos)
}

// Degree returns the number of neighbors.
func (n *RoomNode) Degree() int {
	return n.Neighbors.Size()
}

// SortedNeighbors returns neighbor positions in row-major order. Set
// iteration order is random, so anything that must be reproducible walks
// neighbors through this.
func (n *RoomNode) SortedNeighbors() []world.Point {
	out := make([]world.Point, 0, n.Neighbors.Size())
	n.Neighbors.Each(func(p world.Point) {
		out = append(out, p)
	})
	slices.SortFunc(out, world.Point.Compare)
	return out
}

// Equal reports whether two nodes share a position.
func (n *RoomNode) Equal(other *RoomNode) bool {
	return other != nil && n.Position == other.Position
}
