// Package assets provides embedded files for pokeview.
package assets

import (
	"embed"
	"io/fs"
)

// SeedPath is the bundled catalog seed inside FS.
const SeedPath = "seed/pokemon.yaml"

//go:embed seed/pokemon.yaml
var FS embed.FS

// Seed returns the bundled catalog seed document.
func Seed() ([]byte, error) {
	return fs.ReadFile(FS, SeedPath)
}
