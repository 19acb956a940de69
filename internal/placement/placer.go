// Package placement turns room-grid positions into world-space footprints.
//
// Rooms are laid out in bands: every grid column is as wide as its widest
// room and every grid row as tall as its tallest. A room is positioned from
// an already placed neighbor, offset by the half-sum of both bands' extents
// scaled by a spacing multiplier. Because the offset only depends on the
// pair of bands, a room lands on the same spot whichever neighbor it was
// placed from, and band cells never overlap.
package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// ErrOrdering marks a room processed before the rooms it depends on.
var ErrOrdering = errors.New("ordering error")

// MinRoomSize is the smallest footprint edge: a wall on each side plus one floor cell.
const MinRoomSize = 3

// MinCorridorGap is the smallest MinGap that leaves a corridor room to turn
// between two bands.
const MinCorridorGap = 2

// Footprint is the measured size of the template chosen for a room.
type Footprint struct {
	Size     world.Size
	Template string
}

// PlacedRoom pairs a graph room with its world-space footprint.
type PlacedRoom struct {
	Position  world.Point // room-grid position
	Type      graph.RoomType
	Center    world.Point // world position the room was placed at
	Footprint world.Rect
	Template  string
}

// Options tunes placement.
type Options struct {
	// Multiplier scales the half-sum spacing; values above 1 leave clearance
	// for corridors between neighboring rooms.
	Multiplier float64
	// MinGap is the smallest number of free cells kept between adjacent
	// bands whatever the multiplier.
	MinGap int
	// Jitter shifts each room randomly inside its band instead of centering it.
	Jitter bool
}

// DefaultOptions returns the spacing used by the shipped levels.
func DefaultOptions() Options {
	return Options{Multiplier: 1.2, MinGap: 2}
}

// Placer positions rooms of one level.
type Placer struct {
	opts       Options
	rng        *rand.Rand
	log        logr.Logger
	footprints map[world.Point]Footprint
	colWidth   map[int]int
	rowHeight  map[int]int
	placed     map[world.Point]PlacedRoom
}

// NewPlacer prepares band extents from the footprint of every room in the level.
func NewPlacer(footprints map[world.Point]Footprint, opts Options, rng *rand.Rand, log logr.Logger) (*Placer, error) {
	if opts.Multiplier < 1 {
		return nil, fmt.Errorf("%w: spacing multiplier must be at least 1, got %.2f", generator.ErrConfiguration, opts.Multiplier)
	}
	if opts.MinGap < MinCorridorGap {
		return nil, fmt.Errorf("%w: minimum gap must be at least %d, got %d", generator.ErrConfiguration, MinCorridorGap, opts.MinGap)
	}
	if opts.Jitter && rng == nil {
		return nil, fmt.Errorf("%w: jitter needs a random source", generator.ErrConfiguration)
	}

	p := &Placer{
		opts:       opts,
		rng:        rng,
		log:        log,
		footprints: footprints,
		colWidth:   make(map[int]int),
		rowHeight:  make(map[int]int),
		placed:     make(map[world.Point]PlacedRoom),
	}
	for pos, fp := range footprints {
		if fp.Size.Width < MinRoomSize || fp.Size.Height < MinRoomSize {
			return nil, fmt.Errorf("%w: footprint %q at %v is %dx%d, minimum is %dx%d",
				generator.ErrConfiguration, fp.Template, pos, fp.Size.Width, fp.Size.Height, MinRoomSize, MinRoomSize)
		}
		p.colWidth[pos.X] = max(p.colWidth[pos.X], fp.Size.Width)
		p.rowHeight[pos.Y] = max(p.rowHeight[pos.Y], fp.Size.Height)
	}
	return p, nil
}

// PlaceRoom positions node using footprint fp. The start room goes to the
// world origin; any other room needs a neighbor that is already placed.
func (p *Placer) PlaceRoom(node *graph.RoomNode, fp Footprint) (PlacedRoom, error) {
	band, ok := p.band(node.Position)
	if !ok {
		return PlacedRoom{}, fmt.Errorf("%w: room %v has no footprint", generator.ErrConfiguration, node.Position)
	}
	if fp.Size.Width > band.Width || fp.Size.Height > band.Height {
		return PlacedRoom{}, fmt.Errorf("%w: footprint %dx%d of room %v exceeds its band %dx%d",
			generator.ErrConfiguration, fp.Size.Width, fp.Size.Height, node.Position, band.Width, band.Height)
	}

	var center world.Point
	if node.Type != graph.Start {
		anchor, ok := p.placedNeighbor(node)
		if !ok {
			return PlacedRoom{}, fmt.Errorf("%w: cannot place room %v, no connected room has been placed yet",
				ErrOrdering, node.Position)
		}
		dir := node.Position.Sub(anchor.Position)
		spacing := world.Point{
			X: p.spacing(p.colWidth[anchor.Position.X], p.colWidth[node.Position.X]),
			Y: p.spacing(p.rowHeight[anchor.Position.Y], p.rowHeight[node.Position.Y]),
		}
		center = anchor.Center.Add(dir.Scale(spacing))
	}

	room := PlacedRoom{
		Position:  node.Position,
		Type:      node.Type,
		Center:    center,
		Footprint: p.fit(center, band, fp.Size, node.Type == graph.Start),
		Template:  fp.Template,
	}
	p.placed[node.Position] = room
	p.log.V(2).Info("room placed", "position", node.Position.String(), "center", center.String(), "template", fp.Template)
	return room, nil
}

// PlaceAll places every room reachable from the start room in breadth-first
// order, which guarantees each room has a placed neighbor when its turn comes.
func (p *Placer) PlaceAll(g *graph.Graph) ([]PlacedRoom, error) {
	start := generator.Origin
	for _, node := range g.Nodes() {
		if node.Type == graph.Start {
			start = node.Position
			break
		}
	}

	var rooms []PlacedRoom
	for _, pos := range g.Order(start, graph.BreadthFirst{}) {
		room, err := p.PlaceRoom(g.Node(pos), p.footprints[pos])
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if len(rooms) != g.Len() {
		return nil, fmt.Errorf("%w: placed %d of %d rooms, graph is not connected", ErrOrdering, len(rooms), g.Len())
	}
	return rooms, nil
}

// Placed returns the placed room at a grid position.
func (p *Placer) Placed(pos world.Point) (PlacedRoom, bool) {
	room, ok := p.placed[pos]
	return room, ok
}

func (p *Placer) placedNeighbor(node *graph.RoomNode) (PlacedRoom, bool) {
	for _, pos := range node.SortedNeighbors() {
		if room, ok := p.placed[pos]; ok {
			return room, true
		}
	}
	return PlacedRoom{}, false
}

func (p *Placer) band(pos world.Point) (world.Size, bool) {
	w, okW := p.colWidth[pos.X]
	h, okH := p.rowHeight[pos.Y]
	return world.Size{Width: w, Height: h}, okW && okH
}

// spacing is the center distance between two adjacent bands of extents a and b.
func (p *Placer) spacing(a, b int) int {
	scaled := int(math.Ceil(float64(a+b) / 2 * p.opts.Multiplier))
	return max(scaled, (a+b+1)/2+p.opts.MinGap)
}

// fit places a footprint of size s inside the band cell centered on center.
func (p *Placer) fit(center world.Point, band, s world.Size, pinned bool) world.Rect {
	if !p.opts.Jitter || pinned {
		return world.RectAround(center, s)
	}
	cell := world.RectAround(center, band)
	return world.Rect{
		X:      cell.X + p.rng.Intn(band.Width-s.Width+1),
		Y:      cell.Y + p.rng.Intn(band.Height-s.Height+1),
		Width:  s.Width,
		Height: s.Height,
	}
}
