package corridor

import "github.com/samdwyer/dungeonlayout/internal/world"

// doorway returns the wall cells of r opened around exit. The door runs along
// the wall facing dir and never touches the wall's corner cells.
func (s *Synthesizer) doorway(r world.Rect, exit, dir world.Point) []world.Point {
	vertical := dir.X != 0 // east and west walls run along Y
	first, last, pos := r.X+1, r.Right()-2, exit.X
	if vertical {
		first, last, pos = r.Y+1, r.Bottom()-2, exit.Y
	}
	if last < first {
		return nil
	}

	lo, hi := spread(s.opts.DoorWidth)
	lo, hi = pos+lo, pos+hi
	if hi > last {
		lo -= hi - last
		hi = last
	}
	if lo < first {
		hi = min(hi+first-lo, last)
		lo = first
	}

	doors := make([]world.Point, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		if vertical {
			doors = append(doors, world.Point{X: exit.X, Y: i})
		} else {
			doors = append(doors, world.Point{X: i, Y: exit.Y})
		}
	}
	return doors
}
