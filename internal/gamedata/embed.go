// Package gamedata holds the embedded room template catalog and the viewer
// palette, and the helpers that load them.
package gamedata

import "embed"

//go:embed *.json
var dataFS embed.FS
