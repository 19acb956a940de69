package world

import "fmt"

// Point is an integer coordinate. It is used both for room slots on the
// abstract room grid and for cells in world space. Y grows downward.
type Point struct {
	X, Y int
}

// Cardinal unit vectors.
var (
	North = Point{0, -1}
	East  = Point{1, 0}
	South = Point{0, 1}
	West  = Point{-1, 0}
)

// CardinalDirections returns the four cardinal unit vectors in a fixed
// order (north, east, south, west). The order matters for reproducible
// generation since every direction consumes a random roll.
func CardinalDirections() []Point {
	return []Point{North, East, South, West}
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

// Scale multiplies each component by the matching component of s.
func (p Point) Scale(s Point) Point {
	return Point{p.X * s.X, p.Y * s.Y}
}

// Neg returns the opposite vector.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Sign clamps each component to -1, 0 or 1.
func (p Point) Sign() Point {
	return Point{sign(p.X), sign(p.Y)}
}

// IsCardinal reports whether p is one of the four unit directions.
func (p Point) IsCardinal() bool {
	return (p.X == 0) != (p.Y == 0) && abs(p.X)+abs(p.Y) == 1
}

// Less orders points row-major (Y, then X).
func (p Point) Less(o Point) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Compare is Less in the form expected by slices.SortFunc.
func (p Point) Compare(o Point) int {
	switch {
	case p == o:
		return 0
	case p.Less(o):
		return -1
	default:
		return 1
	}
}

// Neighbors8 returns the eight cells surrounding p.
func (p Point) Neighbors8() []Point {
	out := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, Point{p.X + dx, p.Y + dy})
		}
	}
	return out
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// DirectionName returns north/east/south/west for a cardinal vector.
func DirectionName(d Point) string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return d.String()
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
