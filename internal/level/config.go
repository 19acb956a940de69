package level

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/dungeonlayout/internal/corridor"
	"github.com/samdwyer/dungeonlayout/internal/generator"
	"github.com/samdwyer/dungeonlayout/internal/placement"
	"github.com/samdwyer/dungeonlayout/internal/populate"
)

// Config holds every tunable of a generation request.
type Config struct {
	// Seed for the random source. 0 picks a time-based seed, which is then
	// recorded on the level so it can be replayed.
	Seed      int64
	Graph     generator.Params
	Placement placement.Options
	Corridors corridor.Options
	Spawns    populate.Config
}

// DefaultConfig returns the configuration of the shipped levels.
func DefaultConfig() Config {
	return Config{
		Graph:     generator.DefaultParams(),
		Placement: placement.DefaultOptions(),
		Corridors: corridor.DefaultOptions(),
		Spawns:    populate.DefaultConfig(),
	}
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	if err := c.Graph.Validate(); err != nil {
		return err
	}
	if c.Placement.Multiplier < 1 {
		return fmt.Errorf("%w: spacing multiplier must be at least 1, got %.2f", generator.ErrConfiguration, c.Placement.Multiplier)
	}
	if c.Placement.MinGap < placement.MinCorridorGap {
		return fmt.Errorf("%w: minimum gap must be at least %d, got %d", generator.ErrConfiguration, placement.MinCorridorGap, c.Placement.MinGap)
	}
	if c.Corridors.CorridorWidth < 1 || c.Corridors.DoorWidth < 1 {
		return fmt.Errorf("%w: corridor and door widths must be at least 1", generator.ErrConfiguration)
	}
	return c.Spawns.Validate()
}

// ConfigFromEnv starts from DefaultConfig and overrides it with the
// DUNGEON_* environment variables that are set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{"DUNGEON_ROOM_COUNT", &cfg.Graph.RoomCount},
		{"DUNGEON_ROOM_SPAWN_CHANCE", &cfg.Graph.RoomSpawnChance},
		{"DUNGEON_MERCHANT_CHANCE", &cfg.Graph.MerchantRoomSpawnChance},
		{"DUNGEON_TREASURE_CHANCE", &cfg.Graph.TreasureRoomSpawnChance},
		{"DUNGEON_MERCHANT_LIMIT", &cfg.Graph.MerchantSpawnLimit},
		{"DUNGEON_CORRIDOR_WIDTH", &cfg.Corridors.CorridorWidth},
		{"DUNGEON_DOOR_WIDTH", &cfg.Corridors.DoorWidth},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not an integer", generator.ErrConfiguration, v.key, raw)
		}
		*v.dst = n
	}

	if raw := os.Getenv("DUNGEON_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: DUNGEON_SEED=%q is not an integer", generator.ErrConfiguration, raw)
		}
		cfg.Seed = seed
	}
	if raw := os.Getenv("DUNGEON_SPACING"); raw != "" {
		m, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: DUNGEON_SPACING=%q is not a number", generator.ErrConfiguration, raw)
		}
		cfg.Placement.Multiplier = m
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"DUNGEON_SPAWN_BOSS", &cfg.Graph.SpawnBoss},
		{"DUNGEON_JITTER", &cfg.Placement.Jitter},
	}
	for _, v := range bools {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not a boolean", generator.ErrConfiguration, v.key, raw)
		}
		*v.dst = b
	}

	return cfg, cfg.Validate()
}
