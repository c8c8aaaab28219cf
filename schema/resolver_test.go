package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefLoaderStripsFragment(t *testing.T) {
	l := newRefLoader(newTestStore(t))

	doc, err := l.Load("material_types_schema.json#/definitions/material_type")
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestRefLoaderStripsSyntheticScheme(t *testing.T) {
	l := newRefLoader(newTestStore(t))

	doc, err := l.Load(compileBase + "brand_schema.json")
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestRefLoaderEmptyURI(t *testing.T) {
	l := newRefLoader(newTestStore(t))

	_, err := l.Load("#/definitions/material_type")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty URI")
}

func TestRefLoaderUnknownSchema(t *testing.T) {
	l := newRefLoader(newTestStore(t))

	_, err := l.Load("./spool_schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema not found")
}
