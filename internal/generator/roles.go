package generator

import (
	"fmt"

	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// PostProcess assigns room roles over a finished graph. The first room
// reached breadth-first from Origin is the start, the last is the boss (when
// enabled), and every other room rolls for merchant then treasure. Afterwards
// at least one treasure and one merchant room are guaranteed whenever the
// graph has room for them.
func (gen *Generator) PostProcess(g *graph.Graph) error {
	order := g.Order(Origin, graph.BreadthFirst{})
	if len(order) == 0 {
		return fmt.Errorf("%w: graph has no room at the origin", ErrConfiguration)
	}

	merchants := 0
	last := len(order) - 1
	for i, pos := range order {
		switch {
		case i == 0:
			g.SetType(pos, graph.Start)
		case i == last && gen.params.SpawnBoss:
			g.SetType(pos, graph.Boss)
		default:
			roll := gen.rng.Intn(101)
			if roll < gen.params.MerchantRoomSpawnChance && merchants < gen.params.MerchantSpawnLimit {
				g.SetType(pos, graph.Merchant)
				merchants++
			} else if roll < gen.params.TreasureRoomSpawnChance {
				g.SetType(pos, graph.Treasure)
			}
		}
	}

	if err := gen.ensureRole(g, order, graph.Treasure, graph.Merchant); err != nil {
		return err
	}
	return gen.ensureRole(g, order, graph.Merchant, graph.Treasure)
}

// ensureRole retypes one room to role if none has it yet. Candidates are
// normal rooms; when none are left, a surplus room of the donor type is
// taken instead so the donor keeps at least one room.
func (gen *Generator) ensureRole(g *graph.Graph, order []world.Point, role, donor graph.RoomType) error {
	if g.CountType(role) > 0 {
		return nil
	}

	candidates := roomsOfType(g, order, graph.Normal)
	if len(candidates) == 0 && g.CountType(donor) > 1 {
		candidates = roomsOfType(g, order, donor)
	}
	if len(candidates) == 0 {
		if gen.params.RequireSpecialRooms {
			return fmt.Errorf("%w: no room left to host a %s room", ErrConfiguration, role)
		}
		gen.log.V(1).Info("no room available for mandatory role", "role", role.String(), "rooms", g.Len())
		return nil
	}

	pick := candidates[gen.rng.Intn(len(candidates))]
	g.SetType(pick, role)
	return nil
}

func roomsOfType(g *graph.Graph, order []world.Point, roomType graph.RoomType) []world.Point {
	var out []world.Point
	for _, pos := range order {
		if g.Node(pos).Type == roomType {
			out = append(out, pos)
		}
	}
	return out
}
