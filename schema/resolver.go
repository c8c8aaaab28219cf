package schema

import (
	"fmt"
	"net/url"
	"strings"
)

// compileBase is the synthetic base URI schemas are compiled under. The
// schema engine absolutizes relative $refs against it before consulting
// the loader; refLoader strips it back off.
const compileBase = "file:///ofd/schemas/"

// refLoader adapts a Store to the schema engine's URLLoader interface so
// that every $ref is resolved against the alias index instead of the
// filesystem or network.
type refLoader struct {
	store *Store
}

func newRefLoader(store *Store) *refLoader {
	return &refLoader{store: store}
}

// Load resolves a reference URI. The fragment, if any, is stripped first;
// the engine navigates fragments itself after the document is loaded. Any
// synthetic scheme and host the engine injected when absolutizing a
// relative ref is stripped next, and the remaining path is looked up in
// the store.
func (l *refLoader) Load(rawURL string) (any, error) {
	base := rawURL
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return nil, fmt.Errorf("empty URI after stripping fragment: %s", rawURL)
	}

	key := base
	if u, err := url.Parse(base); err == nil && u.Scheme != "" {
		key = u.Path
	}

	doc, err := l.store.ResolveRef(key)
	if err != nil {
		return nil, fmt.Errorf("schema not found: %s", rawURL)
	}
	return doc, nil
}
