package graph

import "github.com/samdwyer/dungeonlayout/internal/world"

// TraversalStrategy walks every node reachable from start exactly once.
type TraversalStrategy interface {
	Traverse(g *Graph, start *RoomNode, visit func(*RoomNode))
}

// BreadthFirst visits nodes level by level.
type BreadthFirst struct{}

// Traverse implements TraversalStrategy.
func (BreadthFirst) Traverse(g *Graph, start *RoomNode, visit func(*RoomNode)) {
	visited := map[world.Point]bool{start.Position: true}
	queue := []*RoomNode{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visit(current)

		for _, pos := range current.SortedNeighbors() {
			if visited[pos] {
				continue
			}
			// Resolve through the graph so replaced nodes are seen with their current type
			next := g.Node(pos)
			if next == nil {
				continue
			}
			visited[pos] = true
			queue = append(queue, next)
		}
	}
}

// DepthFirst follows each branch to its end before backtracking.
type DepthFirst struct{}

// Traverse implements TraversalStrategy.
func (DepthFirst) Traverse(g *Graph, start *RoomNode, visit func(*RoomNode)) {
	visited := make(map[world.Point]bool)
	var walk func(*RoomNode)
	walk = func(current *RoomNode) {
		visited[current.Position] = true
		visit(current)
		for _, pos := range current.SortedNeighbors() {
			if visited[pos] {
				continue
			}
			if next := g.Node(pos); next != nil {
				walk(next)
			}
		}
	}
	walk(start)
}
