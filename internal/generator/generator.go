// Package generator grows a connected room graph from an origin room and
// assigns room roles once the layout is complete.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// Origin is the grid position of the start room.
var Origin = world.Point{}

// Stats describes one GenerateGraph run.
type Stats struct {
	Rooms            int
	ForcedInsertions int
}

// Generator builds room graphs. Every random decision draws from rng, so a
// generator seeded the same way reproduces the same graph.
type Generator struct {
	params Params
	rng    *rand.Rand
	log    logr.Logger
}

// New validates params and creates a generator.
func New(params Params, rng *rand.Rand, log logr.Logger) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: a random source is required", ErrConfiguration)
	}
	return &Generator{params: params, rng: rng, log: log}, nil
}

// GenerateGraph expands g breadth-first from a start room at Origin until it
// holds exactly RoomCount rooms. g must be empty.
func (gen *Generator) GenerateGraph(g *graph.Graph) (Stats, error) {
	if g.Len() != 0 {
		return Stats{}, fmt.Errorf("%w: graph already holds %d rooms", ErrConfiguration, g.Len())
	}
	target := gen.params.RoomCount

	origin := graph.NewRoomNode(Origin, graph.Start)
	g.AddNode(origin)
	queue := []*graph.RoomNode{origin}
	var stats Stats

	for g.Len() < target {
		current := queue[0]
		queue = queue[1:]

		var staged []*graph.RoomNode
		for _, dir := range world.CardinalDirections() {
			pos := current.Position.Add(dir)
			roll := gen.rng.Intn(101)
			if roll > gen.params.RoomSpawnChance || g.Has(pos) {
				continue
			}
			staged = append(staged, graph.NewRoomNode(pos, graph.Normal))

			// Stop once the staged rooms would reach the limit
			if g.Len()+len(staged) >= target {
				break
			}
		}

		for _, node := range staged {
			g.Connect(current, node)
			queue = append(queue, node)
		}

		// Starved: force one room so generation always reaches the target
		if len(queue) == 0 && g.Len() < target {
			node := gen.forceRoom(g, current)
			queue = append(queue, node)
			stats.ForcedInsertions++
		}
	}

	stats.Rooms = g.Len()
	gen.log.V(1).Info("room graph generated", "rooms", stats.Rooms, "forcedInsertions", stats.ForcedInsertions)
	return stats, nil
}

// forceRoom attaches a room on a random free side of from. If every side of
// from is taken it falls back to the newest room that still has a free side.
func (gen *Generator) forceRoom(g *graph.Graph, from *graph.RoomNode) *graph.RoomNode {
	anchor := from
	free := freeSides(g, from.Position)
	if len(free) == 0 {
		nodes := g.Nodes()
		for i := len(nodes) - 1; i >= 0; i-- {
			if free = freeSides(g, nodes[i].Position); len(free) > 0 {
				anchor = nodes[i]
				break
			}
		}
	}

	dir := free[gen.rng.Intn(len(free))]
	node := graph.NewRoomNode(anchor.Position.Add(dir), graph.Normal)
	g.Connect(anchor, node)
	gen.log.V(2).Info("forced room insertion", "anchor", anchor.Position.String(), "position", node.Position.String())
	return node
}

func freeSides(g *graph.Graph, pos world.Point) []world.Point {
	var out []world.Point
	for _, dir := range world.CardinalDirections() {
		if !g.Has(pos.Add(dir)) {
			out = append(out, dir)
		}
	}
	return out
}
