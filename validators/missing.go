package validators

import (
	ofdvalidator "github.com/ofdb/validator"
)

// CategoryMissingFile is the category for required-file findings.
const CategoryMissingFile = "Missing File"

// VariantEntry records which required files a variant directory has.
type VariantEntry struct {
	Path           string
	HasVariantJSON bool
	HasSizesJSON   bool
}

// FilamentEntry records a filament directory and its variants.
type FilamentEntry struct {
	Path            string
	HasFilamentJSON bool
	Variants        []VariantEntry
}

// MaterialEntry records a material directory and its filaments.
type MaterialEntry struct {
	Path            string
	HasMaterialJSON bool
	Filaments       []FilamentEntry
}

// BrandEntry records a brand directory and its materials.
type BrandEntry struct {
	Path         string
	HasBrandJSON bool
	Materials    []MaterialEntry
}

// StoreEntry records a store directory.
type StoreEntry struct {
	Path         string
	HasStoreJSON bool
}

// FileManifest is the complete required-file inventory of a dataset,
// built by the loader while walking the directory trees.
type FileManifest struct {
	Brands []BrandEntry
	Stores []StoreEntry
}

// ValidateRequiredFiles reports every directory level that is missing its
// required JSON file.
func ValidateRequiredFiles(manifest *FileManifest) *ofdvalidator.ValidationResult {
	result := ofdvalidator.NewResult()

	for _, brand := range manifest.Brands {
		if !brand.HasBrandJSON {
			result.AddError(CategoryMissingFile, "Missing brand.json", brand.Path)
		}
		for _, material := range brand.Materials {
			if !material.HasMaterialJSON {
				result.AddError(CategoryMissingFile, "Missing material.json", material.Path)
			}
			for _, filament := range material.Filaments {
				if !filament.HasFilamentJSON {
					result.AddError(CategoryMissingFile, "Missing filament.json", filament.Path)
				}
				for _, variant := range filament.Variants {
					if !variant.HasVariantJSON {
						result.AddError(CategoryMissingFile, "Missing variant.json", variant.Path)
					}
					if !variant.HasSizesJSON {
						result.AddError(CategoryMissingFile, "Missing sizes.json", variant.Path)
					}
				}
			}
		}
	}

	for _, store := range manifest.Stores {
		if !store.HasStoreJSON {
			result.AddError(CategoryMissingFile, "Missing store.json", store.Path)
		}
	}

	return result
}
