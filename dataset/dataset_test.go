package dataset

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofdb/validator/schema"
	"github.com/ofdb/validator/schemas"
	"github.com/ofdb/validator/task"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func pngHeader(width, height uint32) []byte {
	buf := make([]byte, 0, 24)
	buf = append(buf, 0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n')
	buf = binary.BigEndian.AppendUint32(buf, 13)
	buf = append(buf, 'I', 'H', 'D', 'R')
	buf = binary.BigEndian.AppendUint32(buf, width)
	buf = binary.BigEndian.AppendUint32(buf, height)
	return buf
}

// fixtureTree writes a small but complete catalog: one brand with one
// material/filament/variant chain, and one store.
func fixtureTree(t *testing.T) (dataDir, storesDir string) {
	t.Helper()
	root := t.TempDir()
	dataDir = filepath.Join(root, "data")
	storesDir = filepath.Join(root, "stores")

	writeFile(t, filepath.Join(dataDir, "Acme", "brand.json"),
		`{"id": "Acme", "logo": "logo.png", "website": "https://acme.example"}`)
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "Acme", "logo.png"), pngHeader(256, 256), 0o644))

	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "material.json"),
		`{"material": "PLA"}`)
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Basic", "filament.json"),
		`{"id": "Basic", "name": "Basic"}`)
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Basic", "Red", "variant.json"),
		`{"id": "Red", "color_hex": "#FF0000"}`)
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Basic", "Red", "sizes.json"),
		`[{"filament_weight": 1000, "diameter": 1.75,
		   "purchase_links": [{"store_id": "prusa", "url": "https://shop.example"}]}]`)

	writeFile(t, filepath.Join(storesDir, "prusa", "store.json"),
		`{"id": "prusa", "name": "Prusa", "storefront_url": "https://prusa.example"}`)

	return dataDir, storesDir
}

func testStore(t *testing.T) *schema.Store {
	t.Helper()
	store, err := schema.NewStoreFromFS(schemas.Files, ".")
	require.NoError(t, err)
	return store
}

func TestFromDirectories(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	store := testStore(t)
	ds := FromDirectories(dataDir, storesDir, store)
	assert.Same(t, store, ds.Schemas)

	// brand, material, filament, variant, sizes, store
	assert.Len(t, ds.JSONEntries, 6)

	schemaNames := make(map[string]int)
	for _, e := range ds.JSONEntries {
		schemaNames[e.SchemaName]++
	}
	assert.Equal(t, map[string]int{
		"brand": 1, "material": 1, "filament": 1,
		"variant": 1, "sizes": 1, "store": 1,
	}, schemaNames)

	require.Len(t, ds.LogoEntries, 1)
	assert.Equal(t, "logo.png", ds.LogoEntries[0].Filename)
	assert.NotEmpty(t, ds.LogoEntries[0].Data)

	// brand, material, filament, variant, store
	assert.Len(t, ds.FolderEntries, 5)
	assert.Len(t, ds.SizesEntries, 1)
	assert.Equal(t, map[string]struct{}{"prusa": {}}, ds.ValidStoreIDs)
	assert.True(t, ds.LoadFindings.IsValid())

	require.Len(t, ds.Manifest.Brands, 1)
	assert.True(t, ds.Manifest.Brands[0].HasBrandJSON)
	require.Len(t, ds.Manifest.Stores, 1)
	assert.True(t, ds.Manifest.Stores[0].HasStoreJSON)
}

func TestTasksCoverEveryEntry(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	ds := FromDirectories(dataDir, storesDir, testStore(t))

	tasks := ds.Tasks()
	counts := make(map[task.Kind]int)
	for _, tk := range tasks {
		counts[tk.Kind]++
	}
	assert.Equal(t, 6, counts[task.KindJSON])
	assert.Equal(t, 1, counts[task.KindLogo])
	assert.Equal(t, 5, counts[task.KindFolder])
}

// A directory without its required JSON file still gets a folder entry,
// with a nil document, so the folder check can report the absence.
func TestMissingJSONFileYieldsFolderEntry(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "Empty"), 0o755))

	ds := FromDirectories(dataDir, storesDir, testStore(t))
	assert.Len(t, ds.FolderEntries, 6)

	var found bool
	for _, e := range ds.FolderEntries {
		if e.FolderName == "Empty" {
			found = true
			assert.Nil(t, e.Document)
			assert.Equal(t, "brand.json", e.JSONFile)
			assert.Equal(t, "id", e.JSONKey)
		}
	}
	assert.True(t, found, "folder entry for the empty brand dir")
}

// A file that exists but does not parse contributes a load finding and no
// folder entry.
func TestUnparseableJSONYieldsNoFolderEntry(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	writeFile(t, filepath.Join(dataDir, "Broken", "brand.json"), `{not json`)

	ds := FromDirectories(dataDir, storesDir, testStore(t))
	for _, e := range ds.FolderEntries {
		assert.NotEqual(t, "Broken", e.FolderName)
	}
	assert.Equal(t, 1, ds.LoadFindings.ErrorCount())
}

func TestMissingLogoQueuedWithEmptyData(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	require.NoError(t, os.Remove(filepath.Join(dataDir, "Acme", "logo.png")))

	ds := FromDirectories(dataDir, storesDir, testStore(t))
	require.Len(t, ds.LogoEntries, 1)
	assert.Empty(t, ds.LogoEntries[0].Data)
	assert.Equal(t, "logo.png", ds.LogoEntries[0].DeclaredName)
}

func TestMalformedJSONBecomesLoadFinding(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	writeFile(t, filepath.Join(dataDir, "Broken", "brand.json"), `{not json`)

	ds := FromDirectories(dataDir, storesDir, testStore(t))
	require.Equal(t, 1, ds.LoadFindings.ErrorCount())
	assert.Contains(t, ds.LoadFindings.Errors[0].Message, "Failed to parse JSON")

	// The broken file contributes no entries.
	for _, e := range ds.JSONEntries {
		assert.NotContains(t, e.Path, "Broken")
	}
}

// A sizes.json outside the variant level is still collected for the
// cross-reference checks, but only once.
func TestStraySizesCollected(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	writeFile(t, filepath.Join(dataDir, "Acme", "sizes.json"),
		`[{"filament_weight": 500, "diameter": 2.85}]`)

	ds := FromDirectories(dataDir, storesDir, testStore(t))
	assert.Len(t, ds.SizesEntries, 2)

	seen := make(map[string]int)
	for _, e := range ds.SizesEntries {
		seen[e.Path]++
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "duplicate sizes entry for %s", p)
	}
}

func TestMissingDirectoriesYieldEmptyDataSet(t *testing.T) {
	root := t.TempDir()
	ds := FromDirectories(filepath.Join(root, "nope"), filepath.Join(root, "nada"), testStore(t))

	assert.Empty(t, ds.JSONEntries)
	assert.Empty(t, ds.Tasks())
	assert.Empty(t, ds.Manifest.Brands)
	assert.True(t, ds.LoadFindings.IsValid())
}

func TestManifestRecordsMissingFiles(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	require.NoError(t, os.Remove(filepath.Join(dataDir, "Acme", "PLA", "Basic", "Red", "variant.json")))

	ds := FromDirectories(dataDir, storesDir, testStore(t))
	variant := ds.Manifest.Brands[0].Materials[0].Filaments[0].Variants[0]
	assert.False(t, variant.HasVariantJSON)
	assert.True(t, variant.HasSizesJSON)
}
