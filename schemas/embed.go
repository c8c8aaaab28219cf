// Package schemas provides the embedded catalog schema files.
//
// The embedded documents are the canonical JSON Schemas for every catalog
// level (brand, material, filament, variant, sizes) and for the parallel
// store catalog. They are the default source for schema.NewStoreFromFS when
// no --schemas-dir override is given.
package schemas

import (
	"embed"
)

// Files holds the embedded schema documents, one <name>_schema.json per
// logical schema name.
//
//go:embed *.json
var Files embed.FS

// ReadFile returns the raw bytes of one embedded schema file.
func ReadFile(filename string) ([]byte, error) {
	return Files.ReadFile(filename)
}
