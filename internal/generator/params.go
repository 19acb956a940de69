package generator

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks parameter combinations that cannot produce a level.
var ErrConfiguration = errors.New("configuration error")

// MaxRoomCount bounds RoomCount so a typo cannot ask for an unbounded level.
const MaxRoomCount = 10000

// Params controls graph generation and role assignment. Chances are
// percentages in 0..100.
type Params struct {
	// RoomCount is the exact number of rooms to generate.
	RoomCount int
	// RoomSpawnChance is the chance of a room spawning in a given direction.
	// 100 means every room tries all four sides, which tends to produce a
	// diamond-like layout.
	RoomSpawnChance int
	// MerchantRoomSpawnChance is the per-room roll threshold for merchants.
	MerchantRoomSpawnChance int
	// TreasureRoomSpawnChance is the per-room roll threshold for treasure.
	TreasureRoomSpawnChance int
	// MerchantSpawnLimit caps randomly assigned merchant rooms.
	MerchantSpawnLimit int
	// SpawnBoss places a boss room at the last room reached breadth-first.
	SpawnBoss bool
	// RequireSpecialRooms rejects room counts too small to hold every
	// mandatory role (start, boss when enabled, merchant, treasure).
	RequireSpecialRooms bool
}

// DefaultParams returns the tuning used by the shipped levels.
func DefaultParams() Params {
	return Params{
		RoomCount:               20,
		RoomSpawnChance:         60,
		MerchantRoomSpawnChance: 30,
		TreasureRoomSpawnChance: 20,
		MerchantSpawnLimit:      1,
		SpawnBoss:               true,
		RequireSpecialRooms:     true,
	}
}

// MinRoomCount returns the smallest room count that fits every mandatory role.
func (p Params) MinRoomCount() int {
	n := 3 // start, merchant, treasure
	if p.SpawnBoss {
		n++
	}
	return n
}

// Validate reports the first invalid parameter, wrapped in ErrConfiguration.
func (p Params) Validate() error {
	if p.RoomCount < 1 {
		return fmt.Errorf("%w: room count must be at least 1, got %d", ErrConfiguration, p.RoomCount)
	}
	if p.RoomCount > MaxRoomCount {
		return fmt.Errorf("%w: room count %d exceeds %d", ErrConfiguration, p.RoomCount, MaxRoomCount)
	}
	chances := []struct {
		name  string
		value int
	}{
		{"room spawn chance", p.RoomSpawnChance},
		{"merchant room spawn chance", p.MerchantRoomSpawnChance},
		{"treasure room spawn chance", p.TreasureRoomSpawnChance},
	}
	for _, c := range chances {
		if c.value < 0 || c.value > 100 {
			return fmt.Errorf("%w: %s must be within 0..100, got %d", ErrConfiguration, c.name, c.value)
		}
	}
	if p.MerchantSpawnLimit < 0 {
		return fmt.Errorf("%w: merchant spawn limit must not be negative, got %d", ErrConfiguration, p.MerchantSpawnLimit)
	}
	if p.RequireSpecialRooms && p.RoomCount < p.MinRoomCount() {
		return fmt.Errorf("%w: %d rooms cannot hold the mandatory room types, need at least %d",
			ErrConfiguration, p.RoomCount, p.MinRoomCount())
	}
	return nil
}
