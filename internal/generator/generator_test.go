package generator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

func build(t *testing.T, params Params, seed int64) (*graph.Graph, Stats) {
	t.Helper()
	gen, err := New(params, rand.New(rand.NewSource(seed)), logr.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := graph.New()
	stats, err := gen.GenerateGraph(g)
	if err != nil {
		t.Fatalf("GenerateGraph: %v", err)
	}
	if err := gen.PostProcess(g); err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	return g, stats
}

func TestGeneratedGraphInvariants(t *testing.T) {
	for _, roomCount := range []int{4, 7, 20, 60} {
		for seed := int64(1); seed <= 25; seed++ {
			params := DefaultParams()
			params.RoomCount = roomCount
			g, _ := build(t, params, seed)

			if g.Len() != roomCount {
				t.Fatalf("rooms=%d seed=%d: got %d rooms", roomCount, seed, g.Len())
			}

			// Connectivity: everything is reachable from the start room
			visited := 0
			g.Traverse(Origin, graph.DepthFirst{}, func(*graph.RoomNode) { visited++ })
			if visited != roomCount {
				t.Errorf("rooms=%d seed=%d: reached %d rooms", roomCount, seed, visited)
			}

			// Uniqueness and symmetry
			seen := map[world.Point]bool{}
			for _, node := range g.Nodes() {
				if seen[node.Position] {
					t.Errorf("seed=%d: duplicate position %v", seed, node.Position)
				}
				seen[node.Position] = true
				for _, nb := range node.SortedNeighbors() {
					other := g.Node(nb)
					if other == nil {
						t.Fatalf("seed=%d: %v links to missing room %v", seed, node.Position, nb)
					}
					if !other.HasNeighbor(node.Position) {
						t.Errorf("seed=%d: edge %v->%v is not symmetric", seed, node.Position, nb)
					}
					if !nb.Sub(node.Position).IsCardinal() {
						t.Errorf("seed=%d: %v and %v are not grid neighbors", seed, node.Position, nb)
					}
				}
			}

			// Mandatory roles
			if n := g.CountType(graph.Start); n != 1 {
				t.Errorf("rooms=%d seed=%d: %d start rooms", roomCount, seed, n)
			}
			if g.Node(Origin).Type != graph.Start {
				t.Errorf("seed=%d: origin is %v, want start", seed, g.Node(Origin).Type)
			}
			if n := g.CountType(graph.Boss); n != 1 {
				t.Errorf("rooms=%d seed=%d: %d boss rooms", roomCount, seed, n)
			}
			if g.CountType(graph.Merchant) < 1 || g.CountType(graph.Treasure) < 1 {
				t.Errorf("rooms=%d seed=%d: merchant=%d treasure=%d", roomCount, seed,
					g.CountType(graph.Merchant), g.CountType(graph.Treasure))
			}
		}
	}
}

func TestSingleRoom(t *testing.T) {
	params := DefaultParams()
	params.RoomCount = 1
	params.RequireSpecialRooms = false
	g, stats := build(t, params, 42)

	if g.Len() != 1 {
		t.Fatalf("expected 1 room, got %d", g.Len())
	}
	node := g.Node(Origin)
	if node == nil || node.Type != graph.Start {
		t.Fatalf("expected a start room at the origin, got %+v", node)
	}
	if node.Degree() != 0 || len(g.Edges()) != 0 {
		t.Error("a single room must have no connections")
	}
	if stats.ForcedInsertions != 0 {
		t.Errorf("no forced insertions expected, got %d", stats.ForcedInsertions)
	}
}

func TestBossIsLastBreadthFirstRoom(t *testing.T) {
	params := DefaultParams()
	params.RoomCount = 10
	g, stats := build(t, params, 2024)

	order := g.Order(Origin, graph.BreadthFirst{})
	last := order[len(order)-1]
	if g.Node(last).Type != graph.Boss {
		t.Errorf("last breadth-first room %v is %v, want boss", last, g.Node(last).Type)
	}
	if g.CountType(graph.Boss) != 1 {
		t.Errorf("expected exactly one boss, got %d", g.CountType(graph.Boss))
	}
	if stats.ForcedInsertions > params.RoomCount-1 {
		t.Errorf("starvation guard ran %d times", stats.ForcedInsertions)
	}
}

func TestTwoRoomsWithBoss(t *testing.T) {
	params := DefaultParams()
	params.RoomCount = 2
	params.RequireSpecialRooms = false
	g, _ := build(t, params, 7)

	if g.CountType(graph.Start) != 1 || g.CountType(graph.Boss) != 1 {
		t.Errorf("expected start and boss, got start=%d boss=%d",
			g.CountType(graph.Start), g.CountType(graph.Boss))
	}
}

func TestNoBossWhenDisabled(t *testing.T) {
	params := DefaultParams()
	params.SpawnBoss = false
	for seed := int64(0); seed < 10; seed++ {
		g, _ := build(t, params, seed)
		if g.CountType(graph.Boss) != 0 {
			t.Errorf("seed=%d: boss room generated with SpawnBoss=false", seed)
		}
	}
}

func TestSmallestGraphsStillGetSpecialRooms(t *testing.T) {
	params := DefaultParams()
	params.RoomCount = params.MinRoomCount()
	params.MerchantSpawnLimit = 5
	params.MerchantRoomSpawnChance = 100
	for seed := int64(0); seed < 50; seed++ {
		g, _ := build(t, params, seed)
		if g.CountType(graph.Merchant) < 1 || g.CountType(graph.Treasure) < 1 {
			t.Errorf("seed=%d: merchant=%d treasure=%d", seed,
				g.CountType(graph.Merchant), g.CountType(graph.Treasure))
		}
	}
}

func TestStarvationGuard(t *testing.T) {
	params := DefaultParams()
	params.RoomCount = 30
	params.RoomSpawnChance = 0
	g, stats := build(t, params, 99)

	if g.Len() != 30 {
		t.Fatalf("expected 30 rooms, got %d", g.Len())
	}
	if stats.ForcedInsertions == 0 {
		t.Error("a zero spawn chance should rely on forced insertions")
	}
	if stats.ForcedInsertions > params.RoomCount-1 {
		t.Errorf("forced insertions %d exceed %d", stats.ForcedInsertions, params.RoomCount-1)
	}
}

func TestReproducibility(t *testing.T) {
	params := DefaultParams()
	params.RoomCount = 25
	g1, _ := build(t, params, 12345)
	g2, _ := build(t, params, 12345)

	n1, n2 := g1.Nodes(), g2.Nodes()
	if len(n1) != len(n2) {
		t.Fatalf("room count mismatch: %d != %d", len(n1), len(n2))
	}
	for i := range n1 {
		a, b := n1[i], n2[i]
		if a.Position != b.Position || a.Type != b.Type {
			t.Errorf("room %d mismatch: %v/%v != %v/%v", i, a.Position, a.Type, b.Position, b.Type)
		}
	}
	e1, e2 := g1.Edges(), g2.Edges()
	if len(e1) != len(e2) {
		t.Fatalf("edge count mismatch: %d != %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("edge %d mismatch: %v != %v", i, e1[i], e2[i])
		}
	}
}

func TestDifferentSeeds(t *testing.T) {
	params := DefaultParams()
	params.RoomCount = 25
	g1, _ := build(t, params, 1)
	g2, _ := build(t, params, 2)

	identical := true
	for _, n := range g1.Nodes() {
		if other := g2.Node(n.Position); other == nil || other.Type != n.Type {
			identical = false
			break
		}
	}
	if identical {
		t.Error("graphs with different seeds should not be identical")
	}
}

func TestGenerateGraphRequiresEmptyGraph(t *testing.T) {
	gen, err := New(DefaultParams(), rand.New(rand.NewSource(1)), logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	g := graph.New()
	g.AddNode(graph.NewRoomNode(world.Point{X: 3}, graph.Normal))
	if _, err := gen.GenerateGraph(g); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		valid  bool
	}{
		{"defaults", func(*Params) {}, true},
		{"zero rooms", func(p *Params) { p.RoomCount = 0 }, false},
		{"too many rooms", func(p *Params) { p.RoomCount = MaxRoomCount + 1 }, false},
		{"negative spawn chance", func(p *Params) { p.RoomSpawnChance = -1 }, false},
		{"merchant chance over 100", func(p *Params) { p.MerchantRoomSpawnChance = 101 }, false},
		{"treasure chance over 100", func(p *Params) { p.TreasureRoomSpawnChance = 150 }, false},
		{"negative merchant limit", func(p *Params) { p.MerchantSpawnLimit = -1 }, false},
		{"too small for roles", func(p *Params) { p.RoomCount = 3 }, false},
		{"small without boss", func(p *Params) { p.RoomCount = 3; p.SpawnBoss = false }, true},
		{"single room relaxed", func(p *Params) { p.RoomCount = 1; p.RequireSpecialRooms = false }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestNewRequiresRandomSource(t *testing.T) {
	if _, err := New(DefaultParams(), nil, logr.Discard()); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected configuration error without rng, got %v", err)
	}
}
