package level

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeonlayout/internal/gamedata"
	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

func newBuilder(t *testing.T, cfg Config) *Builder {
	t.Helper()
	templates, err := gamedata.LoadTemplateRegistry()
	if err != nil {
		t.Fatalf("LoadTemplateRegistry: %v", err)
	}
	b, err := NewBuilder(cfg, templates, logr.Discard())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return b
}

// reachable flood-fills passable tiles from start.
func reachable(tiles *world.TileMap, start world.Point) map[world.Point]bool {
	seen := map[world.Point]bool{start: true}
	queue := []world.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range world.CardinalDirections() {
			n := p.Add(d)
			if seen[n] || !tiles.IsPassable(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

func TestLevelProperties(t *testing.T) {
	for _, jitter := range []bool{false, true} {
		for seed := int64(1); seed <= 15; seed++ {
			cfg := DefaultConfig()
			cfg.Placement.Jitter = jitter
			lvl, err := newBuilder(t, cfg).GenerateWithSeed(context.Background(), seed)
			if err != nil {
				t.Fatalf("jitter=%v seed=%d: %v", jitter, seed, err)
			}
			checkLevel(t, lvl, cfg)
		}
	}
}

func checkLevel(t *testing.T, lvl *Level, cfg Config) {
	t.Helper()
	g := lvl.Graph

	if g.Len() != cfg.Graph.RoomCount || len(lvl.Rooms) != cfg.Graph.RoomCount {
		t.Fatalf("seed %d: %d nodes, %d placed, want %d", lvl.Seed, g.Len(), len(lvl.Rooms), cfg.Graph.RoomCount)
	}
	if got := len(g.Order(generator.Origin, graph.BreadthFirst{})); got != g.Len() {
		t.Errorf("seed %d: graph not connected, reached %d of %d", lvl.Seed, got, g.Len())
	}
	for _, n := range g.Nodes() {
		for _, nb := range n.SortedNeighbors() {
			if !g.Node(nb).HasNeighbor(n.Position) {
				t.Errorf("seed %d: edge %v->%v is one-way", lvl.Seed, n.Position, nb)
			}
		}
	}
	if g.CountType(graph.Start) != 1 || g.CountType(graph.Boss) != 1 {
		t.Errorf("seed %d: start=%d boss=%d", lvl.Seed, g.CountType(graph.Start), g.CountType(graph.Boss))
	}
	if g.CountType(graph.Treasure) < 1 || g.CountType(graph.Merchant) < 1 {
		t.Errorf("seed %d: treasure=%d merchant=%d", lvl.Seed, g.CountType(graph.Treasure), g.CountType(graph.Merchant))
	}

	for i, a := range lvl.Rooms {
		for _, b := range lvl.Rooms[i+1:] {
			if a.Footprint.Intersects(b.Footprint) {
				t.Errorf("seed %d: rooms %v and %v overlap", lvl.Seed, a.Position, b.Position)
			}
		}
	}

	if lvl.Stats.FailedCorridors != 0 {
		t.Errorf("seed %d: %d corridors failed", lvl.Seed, lvl.Stats.FailedCorridors)
	}
	if len(lvl.Corridors) != len(g.Edges()) {
		t.Errorf("seed %d: %d corridors for %d edges", lvl.Seed, len(lvl.Corridors), len(g.Edges()))
	}

	// Corridors never overwrite rooms: every footprint keeps a wall ring
	// (with doors) around a floor interior.
	for _, r := range lvl.Rooms {
		r.Footprint.Each(func(p world.Point) {
			tile := lvl.Tiles.GetTile(p)
			if r.Footprint.OnBorder(p) {
				if tile != world.TileWall && tile != world.TileDoor {
					t.Errorf("seed %d: room %v border %v is %s", lvl.Seed, r.Position, p, tile)
				}
			} else if tile != world.TileFloor {
				t.Errorf("seed %d: room %v interior %v is %s", lvl.Seed, r.Position, p, tile)
			}
		})
	}

	start, ok := lvl.Room(generator.Origin)
	if !ok {
		t.Fatalf("seed %d: no start room placed", lvl.Seed)
	}
	seen := reachable(lvl.Tiles, start.Footprint.Center())
	for _, r := range lvl.Rooms {
		if !seen[r.Footprint.Center()] {
			t.Errorf("seed %d: room %v cannot be walked to from the start", lvl.Seed, r.Position)
		}
	}

	for pos, cells := range lvl.Spawns {
		room, _ := lvl.Room(pos)
		if room.Type == graph.Start || room.Type == graph.Merchant {
			t.Errorf("seed %d: safe room %v got spawns", lvl.Seed, pos)
		}
		for _, c := range cells {
			if lvl.Tiles.GetTile(c) != world.TileFloor {
				t.Errorf("seed %d: spawn %v is not on a floor", lvl.Seed, c)
			}
		}
	}
}

func TestStartRoomAtOrigin(t *testing.T) {
	lvl, err := newBuilder(t, DefaultConfig()).GenerateWithSeed(context.Background(), 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	start, ok := lvl.Room(generator.Origin)
	if !ok || start.Type != graph.Start {
		t.Fatalf("start room = %+v, %v", start, ok)
	}
	if start.Center != (world.Point{}) || start.Footprint.Center() != (world.Point{}) {
		t.Errorf("start room centered on %v, want origin", start.Footprint.Center())
	}
}

func TestSameSeedSameLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Placement.Jitter = true
	b := newBuilder(t, cfg)

	first, err := b.GenerateWithSeed(context.Background(), 777)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	firstTiles := first.Tiles.String()
	firstRooms := first.Rooms
	firstCorridors := len(first.Corridors)

	// The builder reuses its graph, so the second run also checks it is
	// cleared between requests.
	second, err := b.GenerateWithSeed(context.Background(), 777)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Tiles.String() != firstTiles {
		t.Error("tile maps differ for the same seed")
	}
	if len(second.Rooms) != len(firstRooms) {
		t.Fatalf("room counts differ: %d vs %d", len(firstRooms), len(second.Rooms))
	}
	for i := range firstRooms {
		if firstRooms[i] != second.Rooms[i] {
			t.Errorf("room %d differs: %+v vs %+v", i, firstRooms[i], second.Rooms[i])
		}
	}
	if len(second.Corridors) != firstCorridors {
		t.Errorf("corridor counts differ: %d vs %d", firstCorridors, len(second.Corridors))
	}
	if first.ID == second.ID {
		t.Error("levels share an ID")
	}
}

func TestZeroSeedIsRecorded(t *testing.T) {
	lvl, err := newBuilder(t, DefaultConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if lvl.Seed == 0 {
		t.Error("time-based seed was not recorded")
	}
}

func TestSingleRoomLevelHasNoCorridors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Graph.RoomCount = 1
	cfg.Graph.SpawnBoss = false
	cfg.Graph.RequireSpecialRooms = false

	lvl, err := newBuilder(t, cfg).GenerateWithSeed(context.Background(), 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(lvl.Rooms) != 1 || len(lvl.Corridors) != 0 {
		t.Errorf("rooms=%d corridors=%d, want 1 and 0", len(lvl.Rooms), len(lvl.Corridors))
	}
	if lvl.Tiles.Count(world.TileDoor) != 0 {
		t.Error("a lone room should have no doors")
	}
}

func TestCorridorsAreAllStraightWithoutJitter(t *testing.T) {
	lvl, err := newBuilder(t, DefaultConfig()).GenerateWithSeed(context.Background(), 11)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, c := range lvl.Corridors {
		if c.HasCorner {
			t.Errorf("corridor %v->%v has a corner", c.From, c.To)
		}
	}
}

func TestNewBuilderRejectsBadConfig(t *testing.T) {
	templates, err := gamedata.LoadTemplateRegistry()
	if err != nil {
		t.Fatalf("LoadTemplateRegistry: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Graph.RoomCount = 2
	if _, err := NewBuilder(cfg, templates, logr.Discard()); !errors.Is(err, generator.ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
	if _, err := NewBuilder(DefaultConfig(), nil, logr.Discard()); !errors.Is(err, generator.ErrConfiguration) {
		t.Errorf("nil registry err = %v, want ErrConfiguration", err)
	}
}

func TestTightestSpacingStillRoutesCorridors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Placement.Multiplier = 1
	cfg.Placement.MinGap = 2
	cfg.Placement.Jitter = true

	for seed := int64(1); seed <= 40; seed++ {
		lvl, err := newBuilder(t, cfg).GenerateWithSeed(context.Background(), seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		checkLevel(t, lvl, cfg)
		for _, c := range lvl.Corridors {
			misaligned := c.Start.X != c.End.X && c.Start.Y != c.End.Y
			if misaligned != c.HasCorner {
				t.Errorf("seed %d: corridor %v->%v exits %v %v, corner=%v",
					lvl.Seed, c.From, c.To, c.Start, c.End, c.HasCorner)
			}
		}
	}
}

func TestNewBuilderRejectsNarrowGaps(t *testing.T) {
	templates, err := gamedata.LoadTemplateRegistry()
	if err != nil {
		t.Fatalf("LoadTemplateRegistry: %v", err)
	}
	for _, gap := range []int{0, 1} {
		cfg := DefaultConfig()
		cfg.Placement.MinGap = gap
		cfg.Placement.Jitter = true
		if _, err := NewBuilder(cfg, templates, logr.Discard()); !errors.Is(err, generator.ErrConfiguration) {
			t.Errorf("gap %d: err = %v, want ErrConfiguration", gap, err)
		}
	}
}
