package corridor

import "github.com/samdwyer/dungeonlayout/internal/world"

// ExitCell returns the midpoint of r's wall facing dir.
func ExitCell(r world.Rect, dir world.Point) world.Point {
	c := r.Center()
	switch dir {
	case world.North:
		return world.Point{X: c.X, Y: r.Y}
	case world.South:
		return world.Point{X: c.X, Y: r.Bottom() - 1}
	case world.East:
		return world.Point{X: r.Right() - 1, Y: c.Y}
	case world.West:
		return world.Point{X: r.X, Y: c.Y}
	}
	return c
}

// buildPath routes from exit cell start to exit cell end. The route leaves
// start along dir, runs between the approach cells just outside both walls
// and enters end against dir. Approach cells sharing an axis give a straight
// run; otherwise the run is L-shaped, horizontal first when dir is
// horizontal.
func buildPath(start, end, dir world.Point) (path []world.Point, corner world.Point, hasCorner bool) {
	from := start.Add(dir)
	to := end.Sub(dir)

	path = []world.Point{start}
	if from.X == to.X || from.Y == to.Y {
		path = appendLine(path, from, to)
	} else {
		if dir.X != 0 {
			corner = world.Point{X: to.X, Y: from.Y}
		} else {
			corner = world.Point{X: from.X, Y: to.Y}
		}
		hasCorner = true
		path = appendLine(path, from, corner)
		path = appendLine(path, corner, to)
	}
	return appendLine(path, end, end), corner, hasCorner
}

// appendLine appends the straight run a..b (inclusive) to path, skipping a
// cell equal to the path's current tail.
func appendLine(path []world.Point, a, b world.Point) []world.Point {
	step := b.Sub(a).Sign()
	for p := a; ; p = p.Add(step) {
		if len(path) == 0 || path[len(path)-1] != p {
			path = append(path, p)
		}
		if p == b {
			return path
		}
	}
}
