// Package populate activates spawn markers in placed rooms.
//
// Every room template may carry spawn markers. For each room the populator
// rolls each marker against a spawn chance, caps the count at a maximum and
// tops it up to a minimum. Safe room types get nothing.
package populate

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeonlayout/internal/gamedata"
	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/placement"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// Config controls marker activation.
type Config struct {
	Chance    int // percent, 0..100
	Min       int
	Max       int
	SafeTypes []graph.RoomType
}

// DefaultConfig returns the activation rules used by the shipped levels.
func DefaultConfig() Config {
	return Config{
		Chance:    50,
		Min:       1,
		Max:       10,
		SafeTypes: []graph.RoomType{graph.Start, graph.Merchant, graph.Shop},
	}
}

// Validate reports a configuration error for out-of-range values.
func (c Config) Validate() error {
	switch {
	case c.Chance < 0 || c.Chance > 100:
		return fmt.Errorf("%w: spawn chance %d outside 0..100", generator.ErrConfiguration, c.Chance)
	case c.Min < 0:
		return fmt.Errorf("%w: minimum spawns %d is negative", generator.ErrConfiguration, c.Min)
	case c.Min > c.Max:
		return fmt.Errorf("%w: minimum spawns %d exceeds maximum %d", generator.ErrConfiguration, c.Min, c.Max)
	}
	return nil
}

// TemplateSource resolves a template id to its definition.
type TemplateSource interface {
	Get(id string) *gamedata.RoomTemplate
}

// Result holds the activated spawn cells of a level in world space.
type Result struct {
	Spawns     map[world.Point][]world.Point // keyed by room-grid position
	Total      int
	Mismatches int // rooms that could not be populated
}

// Populator activates spawn markers for one level.
type Populator struct {
	cfg       Config
	templates TemplateSource
	rng       *rand.Rand
	log       logr.Logger
}

// New validates cfg and creates a populator.
func New(cfg Config, templates TemplateSource, rng *rand.Rand, log logr.Logger) (*Populator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: a random source is required", generator.ErrConfiguration)
	}
	return &Populator{cfg: cfg, templates: templates, rng: rng, log: log}, nil
}

// Populate activates markers for every room, in the order given.
func (p *Populator) Populate(rooms []placement.PlacedRoom) Result {
	res := Result{Spawns: make(map[world.Point][]world.Point)}
	for _, room := range rooms {
		if slices.Contains(p.cfg.SafeTypes, room.Type) {
			continue
		}
		tmpl := p.templates.Get(room.Template)
		if tmpl == nil || len(tmpl.SpawnMarkers) == 0 {
			res.Mismatches++
			p.log.V(1).Info("room has no spawn markers, skipping",
				"room", room.Position.String(), "template", room.Template)
			continue
		}

		picked := p.activate(len(tmpl.SpawnMarkers))
		cells := make([]world.Point, 0, len(picked))
		origin := world.Point{X: room.Footprint.X, Y: room.Footprint.Y}
		for _, i := range picked {
			cells = append(cells, origin.Add(tmpl.SpawnMarkers[i]))
		}
		res.Spawns[room.Position] = cells
		res.Total += len(cells)
	}
	return res
}

// activate returns the sorted indexes of the markers to activate out of n.
func (p *Populator) activate(n int) []int {
	active := make([]bool, n)
	count := 0
	if n < p.cfg.Min {
		for i := range active {
			active[i] = true
		}
		count = n
	} else {
		for i := range active {
			if p.rng.Intn(100) < p.cfg.Chance && count < p.cfg.Max {
				active[i] = true
				count++
			}
		}
		for count < p.cfg.Min {
			inactive := make([]int, 0, n-count)
			for i, on := range active {
				if !on {
					inactive = append(inactive, i)
				}
			}
			active[inactive[p.rng.Intn(len(inactive))]] = true
			count++
		}
	}

	picked := make([]int, 0, count)
	for i, on := range active {
		if on {
			picked = append(picked, i)
		}
	}
	return picked
}
