// Package viewer is an interactive terminal browser for generated levels.
package viewer

// Mode is what the viewer currently shows.
type Mode int

const (
	// ModeTiles draws the stamped tile map.
	ModeTiles Mode = iota
	// ModeGraph draws the abstract room graph.
	ModeGraph
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeTiles:
		return "tiles"
	case ModeGraph:
		return "graph"
	default:
		return "unknown"
	}
}
