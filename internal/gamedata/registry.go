package gamedata

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/graph"
)

// TemplateRegistry holds the room templates of a level and picks among them.
type TemplateRegistry struct {
	templates   []RoomTemplate
	byID        map[string]*RoomTemplate
	totalWeight int
}

// NewTemplateRegistry validates the templates and builds a registry. An
// empty catalog, or one where nothing can be picked, is a configuration error.
func NewTemplateRegistry(templates []RoomTemplate) (*TemplateRegistry, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: room template catalog is empty", generator.ErrConfiguration)
	}
	r := &TemplateRegistry{
		templates: templates,
		byID:      make(map[string]*RoomTemplate, len(templates)),
	}
	for i := range templates {
		t := &templates[i]
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate template id %s", generator.ErrConfiguration, t.ID)
		}
		r.byID[t.ID] = t
		r.totalWeight += t.SpawnWeight
	}
	if r.totalWeight == 0 {
		return nil, fmt.Errorf("%w: every room template has zero spawn weight", generator.ErrConfiguration)
	}
	return r, nil
}

// LoadTemplateRegistry builds a registry from the embedded templates.json.
func LoadTemplateRegistry() (*TemplateRegistry, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	return NewTemplateRegistry(templates)
}

// SpawnRandom picks a template with probability proportional to its spawn weight.
func (r *TemplateRegistry) SpawnRandom(rng *rand.Rand) *RoomTemplate {
	return pickWeighted(rng, r.templates, r.totalWeight)
}

// ForType picks a weighted template that allows room type rt. When no
// template allows it, any template may be picked.
func (r *TemplateRegistry) ForType(rng *rand.Rand, rt graph.RoomType) *RoomTemplate {
	var (
		matches []RoomTemplate
		weight  int
	)
	for _, t := range r.templates {
		if t.Allows(rt) && t.SpawnWeight > 0 {
			matches = append(matches, t)
			weight += t.SpawnWeight
		}
	}
	if weight == 0 {
		return r.SpawnRandom(rng)
	}
	picked := pickWeighted(rng, matches, weight)
	return r.byID[picked.ID]
}

// Get returns the template with the given id, or nil.
func (r *TemplateRegistry) Get(id string) *RoomTemplate {
	return r.byID[id]
}

// All returns every template in catalog order.
func (r *TemplateRegistry) All() []RoomTemplate {
	return r.templates
}

func pickWeighted(rng *rand.Rand, templates []RoomTemplate, total int) *RoomTemplate {
	roll := rng.Intn(total)
	for i := range templates {
		roll -= templates[i].SpawnWeight
		if roll < 0 {
			return &templates[i]
		}
	}
	return &templates[len(templates)-1]
}
