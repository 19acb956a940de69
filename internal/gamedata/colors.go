package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: want 6 digits", hex)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// Swatch is one palette entry.
type Swatch struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

// Rune returns the first rune of the glyph, or fallback when it is empty.
func (s Swatch) Rune(fallback rune) rune {
	for _, r := range s.Glyph {
		return r
	}
	return fallback
}

// Palette maps room types and tile kinds to glyphs and colors.
type Palette struct {
	Rooms  map[graph.RoomType]Swatch `json:"rooms"`
	Tiles  map[string]Swatch         `json:"tiles"`
	Marker Swatch                    `json:"marker"`
}

// LoadPalette reads the embedded palette.json and checks its colors.
func LoadPalette() (*Palette, error) {
	p, err := Load[Palette]("palette.json")
	if err != nil {
		return nil, err
	}
	for t, s := range p.Rooms {
		if _, err := ParseHexColor(s.Color); err != nil {
			return nil, fmt.Errorf("palette room %s: %w", t, err)
		}
	}
	for name, s := range p.Tiles {
		if _, err := ParseHexColor(s.Color); err != nil {
			return nil, fmt.Errorf("palette tile %s: %w", name, err)
		}
	}
	return &p, nil
}

// RoomColor returns the color for a room type, or the default color.
func (p *Palette) RoomColor(t graph.RoomType) tcell.Color {
	s, ok := p.Rooms[t]
	if !ok {
		return tcell.ColorDefault
	}
	c, _ := ParseHexColor(s.Color)
	return c
}

// RoomGlyph returns the label glyph drawn at a room's center.
func (p *Palette) RoomGlyph(t graph.RoomType) rune {
	return p.Rooms[t].Rune(' ')
}

// TileStyle returns the glyph and color used for a tile kind.
func (p *Palette) TileStyle(kind world.Tile) (rune, tcell.Color) {
	s, ok := p.Tiles[kind.String()]
	if !ok {
		return kind.Rune(), tcell.ColorDefault
	}
	c, _ := ParseHexColor(s.Color)
	return s.Rune(kind.Rune()), c
}
