// Package main is the entry point for the dungeon layout generator.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeonlayout/internal/gamedata"
	"github.com/samdwyer/dungeonlayout/internal/level"
	"github.com/samdwyer/dungeonlayout/internal/telemetry"
	"github.com/samdwyer/dungeonlayout/internal/ui"
	"github.com/samdwyer/dungeonlayout/internal/viewer"
)

func main() {
	// .env is optional; variables may come from the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed, continuing without tracing: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	verbosity, _ := strconv.Atoi(os.Getenv("DUNGEON_VERBOSITY"))
	logger := telemetry.NewLogger(verbosity)

	cfg, err := level.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	templates, err := gamedata.LoadTemplateRegistry()
	if err != nil {
		log.Fatalf("Failed to load room templates: %v", err)
	}
	builder, err := level.NewBuilder(cfg, templates, logger)
	if err != nil {
		log.Fatalf("Failed to create level builder: %v", err)
	}

	if headless, _ := strconv.ParseBool(os.Getenv("DUNGEON_HEADLESS")); headless {
		if err := dump(ctx, builder); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		return
	}

	palette, err := gamedata.LoadPalette()
	if err != nil {
		log.Fatalf("Failed to load palette: %v", err)
	}
	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}
	v := viewer.New(screen, ui.NewRenderer(screen, palette), builder, logger.WithName("viewer"))
	runErr := v.Run(ctx)
	v.Close()
	if runErr != nil {
		log.Fatalf("Viewer error: %v", runErr)
	}
}

// dump generates one level and prints it as ASCII with a short summary.
func dump(ctx context.Context, builder *level.Builder) error {
	lvl, err := builder.Generate(ctx)
	if err != nil {
		return err
	}
	fmt.Print(lvl.Tiles.String())
	fmt.Printf("level %s seed %d: %d rooms, %d corridors (%d failed), %d spawns, %d forced insertions\n",
		lvl.ID, lvl.Seed, lvl.Stats.Rooms, lvl.Stats.Corridors, lvl.Stats.FailedCorridors,
		lvl.Stats.Spawns, lvl.Stats.ForcedInsertions)
	for _, room := range lvl.Rooms {
		fmt.Printf("  %-9s grid %-8s at %-10s template %s\n",
			room.Type, room.Position, room.Footprint.Center(), room.Template)
	}
	return nil
}

// setupOTelEnv points the OTLP exporter at Honeycomb using our own
// variables, unless an endpoint was configured explicitly.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Built here because .env files may hold an unexpanded variable reference
	apiKey := os.Getenv("HONEYCOMB_DUNGEONLAYOUT_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DUNGEONLAYOUT_DATASET")
	if dataset == "" {
		dataset = "dungeonlayout"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
