// Package level runs the whole layout pipeline for one request: room graph,
// roles, templates, placement, corridors, tiles and spawn markers.
package level

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonlayout/internal/corridor"
	"github.com/samdwyer/dungeonlayout/internal/gamedata"
	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/placement"
	"github.com/samdwyer/dungeonlayout/internal/populate"
	"github.com/samdwyer/dungeonlayout/internal/telemetry"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// Stats summarizes one generated level.
type Stats struct {
	Rooms            int
	ForcedInsertions int
	Corridors        int
	FailedCorridors  int
	Spawns           int
	SpawnMismatches  int
}

// Level is the output of one generation request.
type Level struct {
	ID   uuid.UUID
	Seed int64
	// Graph is owned by the Builder and is cleared by its next Generate call.
	Graph     *graph.Graph
	Rooms     []placement.PlacedRoom
	Corridors []corridor.Spec
	Tiles     *world.TileMap
	Spawns    map[world.Point][]world.Point
	Stats     Stats
}

// Room returns the placed room at a grid position.
func (l *Level) Room(pos world.Point) (placement.PlacedRoom, bool) {
	for _, r := range l.Rooms {
		if r.Position == pos {
			return r, true
		}
	}
	return placement.PlacedRoom{}, false
}

// Builder generates levels. It owns a single graph and is not safe for
// concurrent use; callers serialize requests.
type Builder struct {
	cfg       Config
	templates *gamedata.TemplateRegistry
	graph     *graph.Graph
	log       logr.Logger
	tracer    trace.Tracer
}

// NewBuilder validates cfg and creates a builder drawing templates from
// the given registry.
func NewBuilder(cfg Config, templates *gamedata.TemplateRegistry, log logr.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if templates == nil {
		return nil, fmt.Errorf("%w: no room template registry", generator.ErrConfiguration)
	}
	g := graph.New()
	g.SetLogger(log.WithName("graph"))
	return &Builder{
		cfg:       cfg,
		templates: templates,
		graph:     g,
		log:       log,
		tracer:    telemetry.Tracer("level"),
	}, nil
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Generate builds a level with the configured seed.
func (b *Builder) Generate(ctx context.Context) (*Level, error) {
	return b.GenerateWithSeed(ctx, b.cfg.Seed)
}

// GenerateWithSeed builds a level from an explicit seed. 0 picks a
// time-based seed. The same seed and configuration always give the same
// level apart from its ID.
func (b *Builder) GenerateWithSeed(ctx context.Context, seed int64) (*Level, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	lvl := &Level{
		ID:     uuid.New(),
		Seed:   seed,
		Graph:  b.graph,
		Tiles:  world.NewTileMap(),
		Spawns: make(map[world.Point][]world.Point),
	}

	ctx, span := b.tracer.Start(ctx, "level.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("level.id", lvl.ID.String()),
		attribute.Int64("level.seed", seed),
		attribute.Int("level.room_count", b.cfg.Graph.RoomCount),
	)
	log := b.log.WithValues("level", lvl.ID.String(), "seed", seed)

	if err := b.build(ctx, lvl, rand.New(rand.NewSource(seed)), log); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("level.rooms", lvl.Stats.Rooms),
		attribute.Int("level.corridors", lvl.Stats.Corridors),
		attribute.Int("level.failed_corridors", lvl.Stats.FailedCorridors),
		attribute.Int("level.spawns", lvl.Stats.Spawns),
	)
	log.V(1).Info("level generated", "rooms", lvl.Stats.Rooms, "corridors", lvl.Stats.Corridors)
	return lvl, nil
}

func (b *Builder) build(ctx context.Context, lvl *Level, rng *rand.Rand, log logr.Logger) error {
	b.graph.ClearGraph()

	gen, err := generator.New(b.cfg.Graph, rng, log.WithName("generator"))
	if err != nil {
		return err
	}

	// Graph and roles
	_, span := b.tracer.Start(ctx, "level.graph")
	stats, err := gen.GenerateGraph(b.graph)
	if err == nil {
		err = gen.PostProcess(b.graph)
	}
	span.SetAttributes(
		attribute.Int("graph.rooms", stats.Rooms),
		attribute.Int("graph.forced_insertions", stats.ForcedInsertions),
		attribute.Int("graph.treasure", b.graph.CountType(graph.Treasure)),
		attribute.Int("graph.merchant", b.graph.CountType(graph.Merchant)),
		attribute.Int("graph.boss", b.graph.CountType(graph.Boss)),
	)
	span.End()
	if err != nil {
		return err
	}
	lvl.Stats.Rooms = stats.Rooms
	lvl.Stats.ForcedInsertions = stats.ForcedInsertions

	// Templates, then placement
	_, span = b.tracer.Start(ctx, "level.placement")
	footprints := make(map[world.Point]placement.Footprint, b.graph.Len())
	for _, pos := range b.graph.Order(generator.Origin, graph.BreadthFirst{}) {
		tmpl := b.templates.ForType(rng, b.graph.Node(pos).Type)
		footprints[pos] = placement.Footprint{Size: tmpl.Size(), Template: tmpl.ID}
	}
	placer, err := placement.NewPlacer(footprints, b.cfg.Placement, rng, log.WithName("placement"))
	if err == nil {
		lvl.Rooms, err = placer.PlaceAll(b.graph)
	}
	span.SetAttributes(attribute.Int("placement.rooms", len(lvl.Rooms)))
	span.End()
	if err != nil {
		return err
	}
	for _, room := range lvl.Rooms {
		lvl.Tiles.StampRoom(room.Footprint)
	}

	if err := b.carveCorridors(ctx, lvl, log); err != nil {
		return err
	}
	return b.populate(ctx, lvl, rng, log)
}

// carveCorridors connects every edge once. A failed connection is logged
// and skipped so the rest of the level still gets its corridors.
func (b *Builder) carveCorridors(ctx context.Context, lvl *Level, log logr.Logger) error {
	_, span := b.tracer.Start(ctx, "level.corridors")
	defer span.End()

	synth, err := corridor.NewSynthesizer(b.cfg.Corridors, log.WithName("corridor"))
	if err != nil {
		return err
	}
	for _, room := range lvl.Rooms {
		synth.ClaimRoom(room)
	}

	for _, edge := range b.graph.Edges() {
		spec, err := synth.Connect(edge.A, edge.B)
		if err != nil {
			if !errors.Is(err, placement.ErrOrdering) {
				return err
			}
			lvl.Stats.FailedCorridors++
			log.Error(err, "corridor skipped", "from", edge.A.String(), "to", edge.B.String())
			continue
		}
		lvl.Corridors = append(lvl.Corridors, spec)
		paintCorridor(lvl.Tiles, spec)
	}
	lvl.Stats.Corridors = len(lvl.Corridors)

	span.SetAttributes(
		attribute.Int("corridors.carved", lvl.Stats.Corridors),
		attribute.Int("corridors.failed", lvl.Stats.FailedCorridors),
	)
	return nil
}

// paintCorridor writes a corridor into the tile map. Walls only fill void
// cells; floors may open up an older corridor's wall.
func paintCorridor(tiles *world.TileMap, spec corridor.Spec) {
	for _, p := range spec.Walls {
		if tiles.GetTile(p) == world.TileVoid {
			tiles.Set(p, world.TileWall)
		}
	}
	for _, p := range spec.Floor {
		tiles.Set(p, world.TileFloor)
	}
	for _, p := range spec.Doors {
		tiles.Set(p, world.TileDoor)
	}
}

func (b *Builder) populate(ctx context.Context, lvl *Level, rng *rand.Rand, log logr.Logger) error {
	_, span := b.tracer.Start(ctx, "level.spawns")
	defer span.End()

	pop, err := populate.New(b.cfg.Spawns, b.templates, rng, log.WithName("populate"))
	if err != nil {
		return err
	}
	res := pop.Populate(lvl.Rooms)
	lvl.Spawns = res.Spawns
	lvl.Stats.Spawns = res.Total
	lvl.Stats.SpawnMismatches = res.Mismatches

	span.SetAttributes(
		attribute.Int("spawns.total", res.Total),
		attribute.Int("spawns.mismatches", res.Mismatches),
	)
	return nil
}
