package graph

import "fmt"

// RoomType is the role a room plays in a level.
type RoomType int

const (
	Normal RoomType = iota
	Start
	Boss
	Treasure
	Merchant
	Minigame
	Shop
	Secret
)

var roomTypeNames = [...]string{
	Normal:   "normal",
	Start:    "start",
	Boss:     "boss",
	Treasure: "treasure",
	Merchant: "merchant",
	Minigame: "minigame",
	Shop:     "shop",
	Secret:   "secret",
}

// RoomTypes returns every room type in declaration order.
func RoomTypes() []RoomType {
	return []RoomType{Normal, Start, Boss, Treasure, Merchant, Minigame, Shop, Secret}
}

// String returns a human-readable room type name.
func (t RoomType) String() string {
	if t < 0 || int(t) >= len(roomTypeNames) {
		return "unknown"
	}
	return roomTypeNames[t]
}

// ParseRoomType converts a name produced by String back to a RoomType.
func ParseRoomType(s string) (RoomType, error) {
	for i, name := range roomTypeNames {
		if name == s {
			return RoomType(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown room type %q", s)
}

// MarshalText implements encoding.TextMarshaler so room types read naturally in JSON.
func (t RoomType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(roomTypeNames) {
		return nil, fmt.Errorf("invalid room type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RoomType) UnmarshalText(b []byte) error {
	v, err := ParseRoomType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
