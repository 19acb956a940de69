package world

import "testing"

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 5, Height: 5}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 3, Y: 3, Width: 5, Height: 5}, true},
		{"touching edge", Rect{X: 5, Y: 0, Width: 3, Height: 3}, false},
		{"disjoint", Rect{X: 10, Y: 10, Width: 2, Height: 2}, false},
		{"contained", Rect{X: 1, Y: 1, Width: 2, Height: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRectAroundKeepsCenter(t *testing.T) {
	for _, s := range []Size{{3, 3}, {4, 7}, {10, 6}, {9, 12}} {
		c := Point{-4, 11}
		r := RectAround(c, s)
		if r.Center() != c {
			t.Errorf("RectAround(%v, %+v).Center() = %v", c, s, r.Center())
		}
		if r.Width != s.Width || r.Height != s.Height {
			t.Errorf("RectAround changed size: %+v", r)
		}
	}
}

func TestRectOnBorder(t *testing.T) {
	r := Rect{X: 2, Y: 2, Width: 4, Height: 3}
	if !r.OnBorder(Point{2, 3}) {
		t.Error("left column should be border")
	}
	if !r.OnBorder(Point{5, 4}) {
		t.Error("bottom-right corner should be border")
	}
	if r.OnBorder(Point{3, 3}) {
		t.Error("interior cell should not be border")
	}
	if r.OnBorder(Point{6, 3}) {
		t.Error("outside cell should not be border")
	}
}

func TestCardinalDirections(t *testing.T) {
	dirs := CardinalDirections()
	if len(dirs) != 4 {
		t.Fatalf("expected 4 directions, got %d", len(dirs))
	}
	seen := map[Point]bool{}
	for _, d := range dirs {
		if !d.IsCardinal() {
			t.Errorf("%v is not a unit cardinal vector", d)
		}
		seen[d] = true
		if d.Add(d.Neg()) != (Point{}) {
			t.Errorf("%v + opposite should be zero", d)
		}
	}
	if len(seen) != 4 {
		t.Error("directions are not distinct")
	}
	if (Point{1, 1}).IsCardinal() || (Point{}).IsCardinal() || (Point{2, 0}).IsCardinal() {
		t.Error("non-unit vectors reported as cardinal")
	}
}

func TestNeighbors8(t *testing.T) {
	n := Point{0, 0}.Neighbors8()
	if len(n) != 8 {
		t.Fatalf("expected 8 neighbors, got %d", len(n))
	}
	for _, p := range n {
		if p == (Point{}) {
			t.Error("Neighbors8 must not include the center")
		}
	}
}

func TestTileMapStampRoom(t *testing.T) {
	m := NewTileMap()
	r := Rect{X: -2, Y: -1, Width: 5, Height: 4}
	m.StampRoom(r)

	if m.Len() != 20 {
		t.Errorf("expected 20 cells, got %d", m.Len())
	}
	if m.Count(TileFloor) != 6 {
		t.Errorf("expected 6 floor cells, got %d", m.Count(TileFloor))
	}
	if m.GetTile(Point{-2, -1}) != TileWall {
		t.Error("corner should be wall")
	}
	if !m.IsPassable(Point{0, 0}) {
		t.Error("interior should be passable")
	}
	if m.GetTile(Point{40, 40}) != TileVoid {
		t.Error("untouched cell should be void")
	}
	if m.Bounds() != r {
		t.Errorf("bounds = %+v, want %+v", m.Bounds(), r)
	}
}

func TestTileMapString(t *testing.T) {
	m := NewTileMap()
	m.StampRoom(Rect{X: 0, Y: 0, Width: 3, Height: 3})
	m.Set(Point{1, 0}, TileDoor)
	want := "#+#\n#.#\n###\n"
	if got := m.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
