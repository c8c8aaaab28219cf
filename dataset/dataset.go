// Package dataset loads the catalog from disk into memory.
//
// The loader walks the brand → material → filament → variant hierarchy
// and the parallel store catalog once, reads every file it will need, and
// produces a DataSet of independent entries. Validation itself touches no
// filesystem: all tasks operate on what the loader collected.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/buger/jsonparser"
	json "github.com/goccy/go-json"

	ofdvalidator "github.com/ofdb/validator"
	"github.com/ofdb/validator/schema"
	"github.com/ofdb/validator/task"
	"github.com/ofdb/validator/validators"
)

// JSONEntry is one JSON document to validate against a named schema.
type JSONEntry struct {
	Path       string
	SchemaName string
	Document   any
}

// LogoEntry is one logo file referenced by a brand or store document.
// Data is empty when the referenced file was missing on disk.
type LogoEntry struct {
	Path         string
	Filename     string
	Data         []byte
	DeclaredName string
}

// FolderEntry is one directory whose name must match a field of its JSON
// file. Document is nil when the file was missing on disk; the folder
// check reports that as its own finding, on top of the manifest's.
type FolderEntry struct {
	Path       string
	FolderName string
	Document   any
	JSONFile   string
	JSONKey    string
}

// DataSet is a pre-loaded catalog ready for validation.
type DataSet struct {
	JSONEntries   []JSONEntry
	LogoEntries   []LogoEntry
	FolderEntries []FolderEntry
	SizesEntries  []validators.SizesEntry

	// ValidStoreIDs holds the id of every loaded store.json.
	ValidStoreIDs map[string]struct{}

	// Manifest records which required files each directory has.
	Manifest *validators.FileManifest

	// LoadFindings carries problems found while loading, currently JSON
	// files that failed to parse. The engine merges them into the run
	// aggregate so a broken file is reported rather than silently
	// producing no tasks.
	LoadFindings *ofdvalidator.ValidationResult

	// Schemas is the store the JSON entries validate against.
	Schemas *schema.Store
}

// FromDirectories builds a DataSet by walking dataDir (brand hierarchy)
// and storesDir (store catalog). Unreadable directories contribute no
// entries; individually broken files become LoadFindings or, for logos,
// empty-data entries the logo check reports.
func FromDirectories(dataDir, storesDir string, schemas *schema.Store) *DataSet {
	ds := &DataSet{
		ValidStoreIDs: make(map[string]struct{}),
		LoadFindings:  ofdvalidator.NewResult(),
		Schemas:       schemas,
	}
	ds.Manifest = buildManifest(dataDir, storesDir)

	ds.walkBrands(dataDir)
	ds.walkStores(storesDir)
	ds.collectStraySizes(dataDir)

	return ds
}

func (ds *DataSet) walkBrands(dataDir string) {
	for _, brandDir := range subdirs(dataDir) {
		if _, raw, ok := ds.loadLevel(brandDir, "brand.json", "brand", "id"); ok {
			ds.addLogoEntry(brandDir, raw)
		}

		for _, materialDir := range subdirs(brandDir) {
			ds.loadLevel(materialDir, "material.json", "material", "material")

			for _, filamentDir := range subdirs(materialDir) {
				ds.loadLevel(filamentDir, "filament.json", "filament", "id")

				for _, variantDir := range subdirs(filamentDir) {
					ds.loadLevel(variantDir, "variant.json", "variant", "id")

					sizesFile := filepath.Join(variantDir, "sizes.json")
					if doc, _, ok := ds.loadJSON(sizesFile); ok {
						ds.JSONEntries = append(ds.JSONEntries, JSONEntry{sizesFile, "sizes", doc})
						ds.SizesEntries = append(ds.SizesEntries, validators.SizesEntry{Path: sizesFile, Document: doc})
					}
				}
			}
		}
	}
}

func (ds *DataSet) walkStores(storesDir string) {
	for _, storeDir := range subdirs(storesDir) {
		_, raw, ok := ds.loadLevel(storeDir, "store.json", "store", "id")
		if !ok {
			continue
		}

		if id, err := jsonparser.GetString(raw, "id"); err == nil && id != "" {
			ds.ValidStoreIDs[id] = struct{}{}
		}

		ds.addLogoEntry(storeDir, raw)
	}
}

// loadLevel reads one directory level's required JSON file. The parsed
// document is queued for schema validation, and a folder entry is
// recorded whether the file exists or not: a directory missing its file
// gets a folder entry with a nil document, so the folder check reports
// the absence alongside the manifest check. A file that exists but does
// not parse contributes a load finding only.
func (ds *DataSet) loadLevel(dir, jsonFile, schemaName, jsonKey string) (doc any, raw []byte, ok bool) {
	jsonPath := filepath.Join(dir, jsonFile)
	if !fileExists(jsonPath) {
		ds.FolderEntries = append(ds.FolderEntries, FolderEntry{dir, filepath.Base(dir), nil, jsonFile, jsonKey})
		return nil, nil, false
	}

	doc, raw, ok = ds.loadJSON(jsonPath)
	if !ok {
		return nil, nil, false
	}

	ds.JSONEntries = append(ds.JSONEntries, JSONEntry{jsonPath, schemaName, doc})
	if doc != nil {
		ds.FolderEntries = append(ds.FolderEntries, FolderEntry{dir, filepath.Base(dir), doc, jsonFile, jsonKey})
	}
	return doc, raw, true
}

// collectStraySizes picks up sizes.json files living outside the expected
// variant level so their store-ID and GTIN fields are still checked.
func (ds *DataSet) collectStraySizes(dataDir string) {
	matches, err := doublestar.Glob(os.DirFS(dataDir), "**/sizes.json")
	if err != nil {
		return
	}

	seen := make(map[string]struct{}, len(ds.SizesEntries))
	for _, e := range ds.SizesEntries {
		seen[e.Path] = struct{}{}
	}

	for _, rel := range matches {
		p := filepath.Join(dataDir, filepath.FromSlash(rel))
		if _, ok := seen[p]; ok {
			continue
		}
		if doc, _, ok := ds.loadJSON(p); ok {
			ds.SizesEntries = append(ds.SizesEntries, validators.SizesEntry{Path: p, Document: doc})
		}
	}
}

// addLogoEntry queues the logo referenced by a brand or store document,
// if any. A missing file is queued with empty data so the logo check can
// report it.
func (ds *DataSet) addLogoEntry(dir string, raw []byte) {
	declared, err := jsonparser.GetString(raw, "logo")
	if err != nil || declared == "" {
		return
	}

	logoPath := filepath.Join(dir, declared)
	data, err := os.ReadFile(logoPath)
	if err != nil {
		ds.LogoEntries = append(ds.LogoEntries, LogoEntry{logoPath, declared, nil, declared})
		return
	}
	ds.LogoEntries = append(ds.LogoEntries, LogoEntry{logoPath, filepath.Base(logoPath), data, declared})
}

// loadJSON reads and parses one file. A missing file is not a finding
// here (the manifest check owns that); a file that exists but does not
// parse becomes a load finding and contributes no entries.
func (ds *DataSet) loadJSON(path string) (doc any, raw []byte, ok bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, false
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		ds.LoadFindings.AddError("JSON", fmt.Sprintf("Failed to parse JSON: %v", err), path)
		return nil, nil, false
	}
	return doc, raw, true
}

// subdirs lists the immediate subdirectories of dir, tolerating a
// missing or unreadable dir.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(dir, e.Name()))
		}
	}
	return dirs
}

// Tasks flattens the dataset into the orchestrator's task list. Sizes
// entries are not tasks: store-ID and GTIN checks run over the whole
// collection at once because they cross-reference entries.
func (ds *DataSet) Tasks() []task.Task {
	tasks := make([]task.Task, 0, len(ds.JSONEntries)+len(ds.LogoEntries)+len(ds.FolderEntries))
	for _, e := range ds.JSONEntries {
		tasks = append(tasks, task.JSON(e.Path, e.SchemaName, e.Document))
	}
	for _, e := range ds.LogoEntries {
		tasks = append(tasks, task.Logo(e.Path, e.Filename, e.Data, e.DeclaredName))
	}
	for _, e := range ds.FolderEntries {
		tasks = append(tasks, task.Folder(e.Path, e.FolderName, e.Document, e.JSONFile, e.JSONKey))
	}
	return tasks
}
