// Package schema provides the catalog schema store, $ref resolution and
// JSON Schema validation.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrSchemaNotFound is returned when no schema is registered under a
// requested name or reference URI.
var ErrSchemaNotFound = errors.New("schema not found")

// schemaFiles maps logical schema names to their filenames. The set is
// fixed: one schema per catalog level plus the store catalog.
var schemaFiles = []struct {
	name     string
	filename string
}{
	{"store", "store_schema.json"},
	{"brand", "brand_schema.json"},
	{"material", "material_schema.json"},
	{"material_types", "material_types_schema.json"},
	{"filament", "filament_schema.json"},
	{"variant", "variant_schema.json"},
	{"sizes", "sizes_schema.json"},
}

// Names returns the logical schema names the store knows about, in their
// declaration order.
func Names() []string {
	names := make([]string, 0, len(schemaFiles))
	for _, sf := range schemaFiles {
		names = append(names, sf.name)
	}
	return names
}

// Filename returns the schema filename for a logical name, or "" when the
// name is unknown.
func Filename(name string) string {
	for _, sf := range schemaFiles {
		if sf.name == name {
			return sf.filename
		}
	}
	return ""
}

// Store indexes the fixed set of catalog schemas by logical name and by
// every alias URI a $ref may use to reach them.
//
// A Store is built once before validation starts and is read-only
// afterwards; it may be shared freely across goroutines. The values it
// holds are canonical copies: callers must not mutate what Get returns,
// while ResolveRef always hands out an independent deep copy.
type Store struct {
	byName  map[string]any
	byAlias map[string]any
}

// NewStoreFromFS loads the schema set from dir inside fsys, typically the
// embedded schemas.Files. Each loaded schema is registered under its
// logical name, its raw filename, "./filename", its dir-relative path and
// its declared "$id" if present.
//
// A schema file that does not exist is skipped, matching the tolerant
// loading of the catalog tooling: validating against its name later
// reports "Schema '<name>' not found" instead. A file that exists but does
// not parse is an error.
func NewStoreFromFS(fsys fs.FS, dir string) (*Store, error) {
	s := &Store{
		byName:  make(map[string]any),
		byAlias: make(map[string]any),
	}

	for _, sf := range schemaFiles {
		p := sf.filename
		if dir != "" && dir != "." {
			p = path.Join(dir, sf.filename)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read schema %s: %w", p, err)
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", p, err)
		}

		s.register(sf.name, sf.filename, p, doc)
	}

	return s, nil
}

// NewStoreFromMap builds a Store from pre-parsed schema documents keyed by
// logical name (e.g. "brand"). Unknown keys are ignored.
func NewStoreFromMap(docs map[string]any) *Store {
	s := &Store{
		byName:  make(map[string]any),
		byAlias: make(map[string]any),
	}

	for _, sf := range schemaFiles {
		doc, ok := docs[sf.name]
		if !ok {
			continue
		}
		s.register(sf.name, sf.filename, "", doc)
	}

	return s
}

func (s *Store) register(name, filename, relPath string, doc any) {
	s.byName[name] = doc

	s.byAlias[filename] = doc
	s.byAlias["./"+filename] = doc
	if relPath != "" && relPath != filename {
		s.byAlias[relPath] = doc
	}

	if m, ok := doc.(map[string]any); ok {
		if id, ok := m["$id"].(string); ok && id != "" {
			s.byAlias[id] = doc
		}
	}
}

// Get returns the canonical schema document registered under a logical
// name. The returned value must not be mutated.
func (s *Store) Get(name string) (any, bool) {
	doc, ok := s.byName[name]
	return doc, ok
}

// ResolveRef resolves a reference URI against the alias index: first an
// exact match, then with a leading "./" stripped, finally a suffix match
// across all aliases so that differing base-path prefixes on either side
// still resolve (e.g. "/abs/path/brand_schema.json" finds the schema
// registered as "brand_schema.json").
//
// When two schemas under different directories share a filename the suffix
// fallback is ambiguous; which one wins is undefined. The fixed catalog
// schema set has unique filenames, so the case does not arise in practice.
//
// The returned document is an independent deep copy: the caller (the
// schema engine) may cache or rewrite it without aliasing the canonical
// copy.
func (s *Store) ResolveRef(uri string) (any, error) {
	if doc, ok := s.byAlias[uri]; ok {
		return deepCopy(doc), nil
	}

	stripped := strings.TrimPrefix(uri, "./")
	if doc, ok := s.byAlias[stripped]; ok {
		return deepCopy(doc), nil
	}

	for key, doc := range s.byAlias {
		if strings.HasSuffix(stripped, key) || strings.HasSuffix(key, stripped) {
			return deepCopy(doc), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, uri)
}

// deepCopy clones a decoded JSON value. Only the container types produced
// by JSON decoding need handling; scalars are immutable.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = deepCopy(val)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, val := range t {
			l[i] = deepCopy(val)
		}
		return l
	default:
		return v
	}
}
