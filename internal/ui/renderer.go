package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/dungeonlayout/internal/gamedata"
	"github.com/samdwyer/dungeonlayout/internal/graph"
	"github.com/samdwyer/dungeonlayout/internal/level"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// graphCellSpacing is the distance in columns and rows between two
// neighboring rooms in the graph view.
const graphCellSpacing = 4

// View selects what the renderer draws.
type View struct {
	Graph      bool // abstract room graph instead of tiles
	ShowSpawns bool
}

// Renderer draws levels onto a Screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a renderer using palette for colors and glyphs.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Viewport returns the size of the map area, which is the screen minus
// the status line.
func (r *Renderer) Viewport() (width, height int) {
	w, h := r.screen.Size()
	return w, max(h-1, 0)
}

// Render draws the level through cam, then the status line.
func (r *Renderer) Render(lvl *level.Level, cam *Camera, view View) {
	r.screen.Clear()
	if view.Graph {
		r.drawGraph(lvl.Graph, cam)
	} else {
		r.drawTiles(lvl, cam)
		if view.ShowSpawns {
			r.drawSpawns(lvl, cam)
		}
	}
	r.drawStatus(lvl, view)
	r.screen.Show()
}

func (r *Renderer) drawTiles(lvl *level.Level, cam *Camera) {
	b := lvl.Tiles.Bounds()
	b.Each(func(p world.Point) {
		x, y, ok := cam.ToScreen(p)
		if !ok {
			return
		}
		tile := lvl.Tiles.GetTile(p)
		if tile == world.TileVoid {
			return
		}
		ch, color := r.palette.TileStyle(tile)
		r.screen.SetContent(x, y, ch, tcell.StyleDefault.Foreground(color))
	})

	for _, room := range lvl.Rooms {
		color := r.palette.RoomColor(room.Type)
		inner := world.Rect{
			X: room.Footprint.X + 1, Y: room.Footprint.Y + 1,
			Width: room.Footprint.Width - 2, Height: room.Footprint.Height - 2,
		}
		inner.Each(func(p world.Point) {
			if x, y, ok := cam.ToScreen(p); ok {
				ch, _ := r.palette.TileStyle(world.TileFloor)
				r.screen.SetContent(x, y, ch, tcell.StyleDefault.Foreground(color))
			}
		})
		if glyph := r.palette.RoomGlyph(room.Type); glyph != ' ' {
			if x, y, ok := cam.ToScreen(room.Footprint.Center()); ok {
				r.screen.SetContent(x, y, glyph, tcell.StyleDefault.Foreground(color).Bold(true))
			}
		}
	}
}

func (r *Renderer) drawSpawns(lvl *level.Level, cam *Camera) {
	color, _ := gamedata.ParseHexColor(r.palette.Marker.Color)
	style := tcell.StyleDefault.Foreground(color)
	glyph := r.palette.Marker.Rune('x')
	for _, cells := range lvl.Spawns {
		for _, c := range cells {
			if x, y, ok := cam.ToScreen(c); ok {
				r.screen.SetContent(x, y, glyph, style)
			}
		}
	}
}

// drawGraph lays rooms out on their grid positions with edges between them.
func (r *Renderer) drawGraph(g *graph.Graph, cam *Camera) {
	edgeStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, e := range g.Edges() {
		a := e.A.Scale(world.Point{X: graphCellSpacing, Y: graphCellSpacing})
		dir := e.Direction()
		ch := '-'
		if dir.X == 0 {
			ch = '|'
		}
		for i := 1; i < graphCellSpacing; i++ {
			if x, y, ok := cam.ToScreen(a.Add(dir.Scale(world.Point{X: i, Y: i}))); ok {
				r.screen.SetContent(x, y, ch, edgeStyle)
			}
		}
	}
	for _, n := range g.Nodes() {
		p := n.Position.Scale(world.Point{X: graphCellSpacing, Y: graphCellSpacing})
		if x, y, ok := cam.ToScreen(p); ok {
			glyph := r.palette.RoomGlyph(n.Type)
			if glyph == ' ' {
				glyph = 'o'
			}
			r.screen.SetContent(x, y, glyph, tcell.StyleDefault.Foreground(r.palette.RoomColor(n.Type)).Bold(true))
		}
	}
}

func (r *Renderer) drawStatus(lvl *level.Level, view View) {
	w, h := r.screen.Size()
	if h == 0 {
		return
	}
	mode := "tiles"
	if view.Graph {
		mode = "graph"
	}
	status := fmt.Sprintf(" seed %d │ %d rooms │ %d corridors │ %d spawns │ %s │ r:new s:same g:view m:spawns q:quit",
		lvl.Seed, lvl.Stats.Rooms, lvl.Stats.Corridors, lvl.Stats.Spawns, mode)
	r.RenderMessage(status, h-1, w)
}

// RenderMessage writes msg on row y, truncated to width columns.
func (r *Renderer) RenderMessage(msg string, y, width int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	msg = runewidth.Truncate(msg, width, "…")
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x += runewidth.RuneWidth(ch)
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, y, ' ', style)
	}
}
