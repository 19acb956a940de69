package viewer

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonlayout/internal/level"
	"github.com/samdwyer/dungeonlayout/internal/telemetry"
	"github.com/samdwyer/dungeonlayout/internal/ui"
	"github.com/samdwyer/dungeonlayout/internal/world"
)

// panStep is how many cells one arrow key press moves the camera.
const panStep = 4

// Viewer holds the state of an interactive session.
type Viewer struct {
	screen     *ui.Screen
	renderer   *ui.Renderer
	builder    *level.Builder
	log        logr.Logger
	level      *level.Level
	camera     ui.Camera
	mode       Mode
	showSpawns bool
	message    string
	running    bool
}

// New creates a viewer drawing on screen and generating with builder.
func New(screen *ui.Screen, renderer *ui.Renderer, builder *level.Builder, log logr.Logger) *Viewer {
	return &Viewer{
		screen:     screen,
		renderer:   renderer,
		builder:    builder,
		log:        log,
		mode:       ModeTiles,
		showSpawns: true,
		running:    true,
	}
}

// Run generates the first level and processes input until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")
	ctx, span := tracer.Start(ctx, "viewer.init")
	err := v.regenerate(ctx, v.builder.Config().Seed)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		span.End()
		return err
	}
	span.SetAttributes(
		attribute.String("level.id", v.level.ID.String()),
		attribute.Int64("level.seed", v.level.Seed),
	)
	span.End()

	for v.running {
		v.render()
		v.handleEvent(ctx, v.screen.PollEvent())
	}
	return nil
}

// Level returns the level on display.
func (v *Viewer) Level() *level.Level {
	return v.level
}

// Mode returns the current display mode.
func (v *Viewer) Mode() Mode {
	return v.mode
}

// Running reports whether the viewer is still accepting input.
func (v *Viewer) Running() bool {
	return v.running
}

func (v *Viewer) render() {
	v.renderer.Render(v.level, &v.camera, ui.View{Graph: v.mode == ModeGraph, ShowSpawns: v.showSpawns})
	if v.message != "" {
		w, h := v.screen.Size()
		v.renderer.RenderMessage(v.message, max(h-2, 0), w)
		v.screen.Show()
	}
}

// regenerate replaces the level. A failed generation keeps the old level
// and shows the error instead.
func (v *Viewer) regenerate(ctx context.Context, seed int64) error {
	lvl, err := v.builder.GenerateWithSeed(ctx, seed)
	if err != nil {
		v.log.Error(err, "level generation failed", "seed", seed)
		if v.level == nil {
			return err
		}
		v.message = err.Error()
		return nil
	}
	v.level = lvl
	v.message = ""
	v.recenter()
	return nil
}

func (v *Viewer) recenter() {
	v.camera.Width, v.camera.Height = v.renderer.Viewport()
	v.camera.CenterOn(world.Point{})
}

func (v *Viewer) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
		v.camera.Width, v.camera.Height = v.renderer.Viewport()
	}
}

func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyUp:
		v.camera.Pan(world.North.Scale(world.Point{X: panStep, Y: panStep}))
	case tcell.KeyDown:
		v.camera.Pan(world.South.Scale(world.Point{X: panStep, Y: panStep}))
	case tcell.KeyLeft:
		v.camera.Pan(world.West.Scale(world.Point{X: panStep, Y: panStep}))
	case tcell.KeyRight:
		v.camera.Pan(world.East.Scale(world.Point{X: panStep, Y: panStep}))

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'r':
			// 0 asks the builder for a fresh time-based seed
			_ = v.regenerate(ctx, 0)
		case 's':
			_ = v.regenerate(ctx, v.level.Seed)
		case 'g':
			if v.mode == ModeTiles {
				v.mode = ModeGraph
			} else {
				v.mode = ModeTiles
			}
		case 'm':
			v.showSpawns = !v.showSpawns
		case 'c':
			v.recenter()
		}
	}
}

// Close restores the terminal.
func (v *Viewer) Close() {
	if v.screen != nil {
		v.screen.Close()
	}
}
