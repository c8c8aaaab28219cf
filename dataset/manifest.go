package dataset

import (
	"os"
	"path/filepath"

	"github.com/ofdb/validator/validators"
)

// buildManifest records which required JSON files each directory of the
// two catalog trees has. Presence only; contents are the loader's and the
// schema checks' concern.
func buildManifest(dataDir, storesDir string) *validators.FileManifest {
	manifest := &validators.FileManifest{}

	for _, brandDir := range subdirs(dataDir) {
		brand := validators.BrandEntry{
			Path:         brandDir,
			HasBrandJSON: fileExists(filepath.Join(brandDir, "brand.json")),
		}

		for _, materialDir := range subdirs(brandDir) {
			material := validators.MaterialEntry{
				Path:            materialDir,
				HasMaterialJSON: fileExists(filepath.Join(materialDir, "material.json")),
			}

			for _, filamentDir := range subdirs(materialDir) {
				filament := validators.FilamentEntry{
					Path:            filamentDir,
					HasFilamentJSON: fileExists(filepath.Join(filamentDir, "filament.json")),
				}

				for _, variantDir := range subdirs(filamentDir) {
					filament.Variants = append(filament.Variants, validators.VariantEntry{
						Path:           variantDir,
						HasVariantJSON: fileExists(filepath.Join(variantDir, "variant.json")),
						HasSizesJSON:   fileExists(filepath.Join(variantDir, "sizes.json")),
					})
				}

				material.Filaments = append(material.Filaments, filament)
			}

			brand.Materials = append(brand.Materials, material)
		}

		manifest.Brands = append(manifest.Brands, brand)
	}

	for _, storeDir := range subdirs(storesDir) {
		manifest.Stores = append(manifest.Stores, validators.StoreEntry{
			Path:         storeDir,
			HasStoreJSON: fileExists(filepath.Join(storeDir, "store.json")),
		})
	}

	return manifest
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
