package schema

import (
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofdb/validator/schemas"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStoreFromFS(schemas.Files, ".")
	require.NoError(t, err)
	return store
}

func TestStoreLoadsEveryName(t *testing.T) {
	store := newTestStore(t)

	for _, name := range Names() {
		doc, ok := store.Get(name)
		assert.True(t, ok, "Get(%q)", name)
		assert.NotNil(t, doc, "Get(%q)", name)
	}
}

func TestStoreGetUnknownName(t *testing.T) {
	store := newTestStore(t)
	_, ok := store.Get("spool")
	assert.False(t, ok)
}

// Every registered alias form must resolve: raw filename, "./filename"
// and the declared $id.
func TestResolveRefAliasForms(t *testing.T) {
	store := newTestStore(t)

	for _, name := range Names() {
		filename := Filename(name)
		require.NotEmpty(t, filename)

		for _, alias := range []string{filename, "./" + filename} {
			doc, err := store.ResolveRef(alias)
			assert.NoError(t, err, "ResolveRef(%q)", alias)
			assert.NotNil(t, doc)
		}

		canonical, _ := store.Get(name)
		if m, ok := canonical.(map[string]any); ok {
			if id, ok := m["$id"].(string); ok {
				_, err := store.ResolveRef(id)
				assert.NoError(t, err, "ResolveRef($id %q)", id)
			}
		}
	}
}

// A URI with a different base-path prefix but matching filename suffix
// still finds the schema.
func TestResolveRefSuffixFallback(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.ResolveRef("/abs/path/brand_schema.json")
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestResolveRefNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ResolveRef("unknown_schema.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}

// ResolveRef must hand out an independent copy so the schema engine can
// rewrite its working copy without corrupting the store.
func TestResolveRefReturnsIndependentCopy(t *testing.T) {
	store := newTestStore(t)

	first, err := store.ResolveRef("brand_schema.json")
	require.NoError(t, err)

	m, ok := first.(map[string]any)
	require.True(t, ok)
	m["$id"] = "mutated"
	m["required"] = []any{}

	second, err := store.ResolveRef("brand_schema.json")
	require.NoError(t, err)
	m2, ok := second.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "brand_schema.json", m2["$id"])
	assert.NotEmpty(t, m2["required"])
}

func TestNewStoreFromMap(t *testing.T) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(`{
		"$id": "brand_schema.json",
		"type": "object",
		"required": ["id"]
	}`))
	require.NoError(t, err)

	store := NewStoreFromMap(map[string]any{"brand": doc, "unknown": doc})

	_, ok := store.Get("brand")
	assert.True(t, ok)
	_, ok = store.Get("unknown")
	assert.False(t, ok, "unknown logical names are ignored")
	_, ok = store.Get("material")
	assert.False(t, ok)

	_, err = store.ResolveRef("./brand_schema.json")
	assert.NoError(t, err)
}
