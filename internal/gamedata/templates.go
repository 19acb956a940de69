package gamedata

import (
	"fmt"
	"slices"

	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// RoomTemplate is a prebuilt room shape loaded from templates.json.
type RoomTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	SpawnWeight int              `json:"spawnWeight"`
	RoomTypes   []graph.RoomType `json:"roomTypes"` // empty allows every type
	// SpawnMarkers are offsets from the template's top-left corner where
	// the populate step may place something.
	SpawnMarkers []world.Point `json:"spawnMarkers"`
}

// Size returns the footprint size of the template.
func (t *RoomTemplate) Size() world.Size {
	return world.Size{Width: t.Width, Height: t.Height}
}

// Allows reports whether the template may be used for a room of type rt.
func (t *RoomTemplate) Allows(rt graph.RoomType) bool {
	return len(t.RoomTypes) == 0 || slices.Contains(t.RoomTypes, rt)
}

// Validate checks the template's size and that every marker sits on the floor.
func (t *RoomTemplate) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: template without id", generator.ErrConfiguration)
	}
	if t.Width < 3 || t.Height < 3 {
		return fmt.Errorf("%w: template %s is %dx%d, smaller than 3x3", generator.ErrConfiguration, t.ID, t.Width, t.Height)
	}
	if t.SpawnWeight < 0 {
		return fmt.Errorf("%w: template %s has negative spawn weight", generator.ErrConfiguration, t.ID)
	}
	floor := world.Rect{X: 1, Y: 1, Width: t.Width - 2, Height: t.Height - 2}
	for _, m := range t.SpawnMarkers {
		if !floor.Contains(m) {
			return fmt.Errorf("%w: template %s marker %v is not on the floor", generator.ErrConfiguration, t.ID, m)
		}
	}
	return nil
}

// TemplatesFile is the layout of templates.json.
type TemplatesFile struct {
	Templates []RoomTemplate `json:"templates"`
}

// LoadTemplates reads the embedded room template catalog.
func LoadTemplates() ([]RoomTemplate, error) {
	file, err := Load[TemplatesFile]("templates.json")
	if err != nil {
		return nil, err
	}
	return file.Templates, nil
}
