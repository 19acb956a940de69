// Package corridor carves corridors between placed rooms: exit cells on the
// facing walls, a straight or L-shaped floor path, a single-layer wall skin
// around it and doorways cut into both rooms.
package corridor

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/placement"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// Options sets corridor and doorway widths in cells.
type Options struct {
	CorridorWidth int
	DoorWidth     int
}

// DefaultOptions returns the widths used by the shipped levels.
func DefaultOptions() Options {
	return Options{CorridorWidth: 2, DoorWidth: 2}
}

// Spec is the geometry of one carved corridor.
type Spec struct {
	From, To  world.Point // room-grid positions of both rooms
	Direction world.Point // unit vector from From to To
	Start     world.Point // exit cell on From's wall
	End       world.Point // exit cell on To's wall
	Path      []world.Point
	// Corner is the single bend of an L-shaped run. Path also changes
	// direction on its last step, from the approach cell outside To's wall
	// into End; that step enters the doorway and is not a corner.
	Corner    world.Point
	HasCorner bool
	Floor     []world.Point // newly claimed floor cells
	Walls     []world.Point // newly placed wall cells
	Doors     []world.Point // wall cells opened in both rooms
}

// Synthesizer carves every corridor of one level. It remembers which cells
// belong to rooms and earlier corridors so new corridors never overwrite them.
type Synthesizer struct {
	opts      Options
	log       logr.Logger
	rooms     map[world.Point]placement.PlacedRoom
	roomCells mapset.Set[world.Point]
	floors    mapset.Set[world.Point]
	walls     mapset.Set[world.Point]
}

// NewSynthesizer creates a synthesizer with no claimed cells.
func NewSynthesizer(opts Options, log logr.Logger) (*Synthesizer, error) {
	if opts.CorridorWidth < 1 {
		return nil, fmt.Errorf("%w: corridor width must be at least 1, got %d", generator.ErrConfiguration, opts.CorridorWidth)
	}
	if opts.DoorWidth < 1 {
		return nil, fmt.Errorf("%w: door width must be at least 1, got %d", generator.ErrConfiguration, opts.DoorWidth)
	}
	return &Synthesizer{
		opts:      opts,
		log:       log,
		rooms:     make(map[world.Point]placement.PlacedRoom),
		roomCells: mapset.New[world.Point](),
		floors:    mapset.New[world.Point](),
		walls:     mapset.New[world.Point](),
	}, nil
}

// ClaimRoom registers a placed room so corridors route around its footprint.
func (s *Synthesizer) ClaimRoom(room placement.PlacedRoom) {
	if _, ok := s.rooms[room.Position]; ok {
		return
	}
	s.rooms[room.Position] = room
	room.Footprint.Each(s.roomCells.Put)
}

// Claimed reports whether p belongs to a room or to a corridor floor.
func (s *Synthesizer) Claimed(p world.Point) bool {
	return s.roomCells.Has(p) || s.floors.Has(p)
}

// IsWall reports whether a corridor wall was placed at p.
func (s *Synthesizer) IsWall(p world.Point) bool {
	return s.walls.Has(p)
}

// Connect carves the corridor between two claimed rooms given by grid
// position. A room that was never claimed is an ordering error.
func (s *Synthesizer) Connect(from, to world.Point) (Spec, error) {
	a, ok := s.rooms[from]
	if !ok {
		return Spec{}, fmt.Errorf("%w: room %v has not been placed", placement.ErrOrdering, from)
	}
	b, ok := s.rooms[to]
	if !ok {
		return Spec{}, fmt.Errorf("%w: room %v has not been placed", placement.ErrOrdering, to)
	}
	return s.CreateCorridor(a, b, to.Sub(from))
}

// CreateCorridor carves a corridor leaving a through its wall facing dir and
// entering b through the opposite wall.
func (s *Synthesizer) CreateCorridor(a, b placement.PlacedRoom, dir world.Point) (Spec, error) {
	if !dir.IsCardinal() {
		return Spec{}, fmt.Errorf("%w: corridor direction %v is not cardinal", generator.ErrConfiguration, dir)
	}
	s.ClaimRoom(a)
	s.ClaimRoom(b)

	spec := Spec{
		From:      a.Position,
		To:        b.Position,
		Direction: dir,
		Start:     ExitCell(a.Footprint, dir),
		End:       ExitCell(b.Footprint, dir.Neg()),
	}
	spec.Path, spec.Corner, spec.HasCorner = buildPath(spec.Start, spec.End, dir)

	for _, cell := range spec.Path {
		isCorner := spec.HasCorner && cell == spec.Corner
		for _, p := range s.brush(cell, isCorner) {
			if s.Claimed(p) {
				continue
			}
			s.floors.Put(p)
			// A floor crossing an older corridor's wall opens it up
			s.walls.Remove(p)
			spec.Floor = append(spec.Floor, p)
		}
	}

	for _, f := range spec.Floor {
		for _, n := range f.Neighbors8() {
			if s.Claimed(n) || s.walls.Has(n) {
				continue
			}
			s.walls.Put(n)
			spec.Walls = append(spec.Walls, n)
		}
	}

	spec.Doors = append(spec.Doors, s.doorway(a.Footprint, spec.Start, dir)...)
	spec.Doors = append(spec.Doors, s.doorway(b.Footprint, spec.End, dir.Neg())...)

	s.log.V(2).Info("corridor carved",
		"from", a.Position.String(), "to", b.Position.String(),
		"floor", len(spec.Floor), "walls", len(spec.Walls), "corner", spec.HasCorner)
	return spec, nil
}

// brush returns the floor cells stamped for one path cell. Corners are
// stamped one cell wide so the turn does not overlap itself.
func (s *Synthesizer) brush(center world.Point, isCorner bool) []world.Point {
	if isCorner && s.opts.CorridorWidth > 1 {
		return []world.Point{center}
	}
	lo, hi := spread(s.opts.CorridorWidth)
	out := make([]world.Point, 0, s.opts.CorridorWidth*s.opts.CorridorWidth)
	for dx := lo; dx <= hi; dx++ {
		for dy := lo; dy <= hi; dy++ {
			out = append(out, world.Point{X: center.X + dx, Y: center.Y + dy})
		}
	}
	return out
}

// spread returns the offsets covering width cells around a center; even
// widths lean toward the negative side.
func spread(width int) (lo, hi int) {
	half := width / 2
	hi = half
	if width%2 == 0 {
		hi = half - 1
	}
	return -half, hi
}
