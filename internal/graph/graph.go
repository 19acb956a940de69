// Package graph models a level as rooms on an abstract integer grid joined
// by corridors. It stores room metadata only, never room geometry.
package graph

import (
	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeonlayout/internal/world"
)

// Edge is an undirected connection between two room positions.
type Edge struct {
	A, B world.Point
}

// Direction returns the unit vector pointing from A to B.
func (e Edge) Direction() world.Point {
	return e.B.Sub(e.A).Sign()
}

// Graph maps grid positions to room nodes. It is owned by a single
// generation request and is not safe for concurrent use.
type Graph struct {
	rooms map[world.Point]*RoomNode
	order []world.Point
	log   logr.Logger
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{rooms: make(map[world.Point]*RoomNode)}
}

// SetLogger sets the logger used for traversal warnings.
func (g *Graph) SetLogger(log logr.Logger) {
	g.log = log
}

// AddNode inserts node without connections. It is a no-op if the position
// is already occupied.
func (g *Graph) AddNode(node *RoomNode) {
	if _, ok := g.rooms[node.Position]; ok {
		return
	}
	g.rooms[node.Position] = node
	g.order = append(g.order, node.Position)
}

// AddConnection inserts source if it is missing and records target as its
// neighbor. It only adds the source→target direction; use Connect for both.
func (g *Graph) AddConnection(source, target *RoomNode) {
	if _, ok := g.rooms[source.Position]; !ok {
		g.AddNode(source)
	}
	g.rooms[source.Position].AddNeighbor(target.Position)
}

// Connect adds a bidirectional connection between a and b.
func (g *Graph) Connect(a, b *RoomNode) {
	g.AddConnection(a, b)
	g.AddConnection(b, a)
}

// UpdateNode replaces oldNode with newNode, handing over its neighbors.
// Usually both share a position and only the type changes; if the position
// differs, every neighbor is rewired to the new position. Moving onto a
// position held by another node is refused.
func (g *Graph) UpdateNode(oldNode, newNode *RoomNode) {
	current, ok := g.rooms[oldNode.Position]
	if !ok {
		g.log.Info("update of a node that is not in the graph", "warning", true, "position", oldNode.Position.String())
		return
	}
	if !newNode.Equal(oldNode) && g.Has(newNode.Position) {
		g.log.Info("update onto an occupied position ignored", "warning", true,
			"from", oldNode.Position.String(), "to", newNode.Position.String())
		return
	}

	newNode.Neighbors = current.Neighbors
	delete(g.rooms, oldNode.Position)
	g.rooms[newNode.Position] = newNode
	for i, pos := range g.order {
		if pos == oldNode.Position {
			g.order[i] = newNode.Position
			break
		}
	}

	newNode.Neighbors.Each(func(pos world.Point) {
		neighbor := g.rooms[pos]
		if neighbor == nil {
			return
		}
		neighbor.Neighbors.Remove(oldNode.Position)
		neighbor.Neighbors.Put(newNode.Position)
	})
}

// SetType retypes the node at pos through UpdateNode.
func (g *Graph) SetType(pos world.Point, roomType RoomType) {
	if old := g.rooms[pos]; old != nil {
		g.UpdateNode(old, NewRoomNode(pos, roomType))
	}
}

// Traverse walks every node reachable from start using strategy. A missing
// start position is logged and ignored.
func (g *Graph) Traverse(start world.Point, strategy TraversalStrategy, visit func(*RoomNode)) {
	room, ok := g.rooms[start]
	if !ok {
		g.log.Info("start node does not exist in the graph", "warning", true, "position", start.String())
		return
	}
	strategy.Traverse(g, room, visit)
}

// Order returns the positions reachable from start in the strategy's visit order.
func (g *Graph) Order(start world.Point, strategy TraversalStrategy) []world.Point {
	var out []world.Point
	g.Traverse(start, strategy, func(n *RoomNode) {
		out = append(out, n.Position)
	})
	return out
}

// ClearGraph removes every node.
func (g *Graph) ClearGraph() {
	clear(g.rooms)
	g.order = g.order[:0]
}

// Node returns the node at pos, or nil.
func (g *Graph) Node(pos world.Point) *RoomNode {
	return g.rooms[pos]
}

// Has reports whether pos is occupied.
func (g *Graph) Has(pos world.Point) bool {
	_, ok := g.rooms[pos]
	return ok
}

// Len returns the number of rooms.
func (g *Graph) Len() int {
	return len(g.rooms)
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []*RoomNode {
	out := make([]*RoomNode, 0, len(g.order))
	for _, pos := range g.order {
		out = append(out, g.rooms[pos])
	}
	return out
}

// Edges returns each undirected connection once, ordered by the insertion
// order of its first endpoint and then by neighbor position.
func (g *Graph) Edges() []Edge {
	seen := make(map[Edge]bool)
	var out []Edge
	for _, pos := range g.order {
		for _, nb := range g.rooms[pos].SortedNeighbors() {
			key := Edge{A: pos, B: nb}
			if nb.Less(pos) {
				key = Edge{A: nb, B: pos}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Edge{A: pos, B: nb})
		}
	}
	return out
}

// CountType returns how many nodes have the given type.
func (g *Graph) CountType(roomType RoomType) int {
	n := 0
	for _, node := range g.rooms {
		if node.Type == roomType {
			n++
		}
	}
	return n
}
