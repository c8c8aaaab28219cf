package validators

import (
	"fmt"

	ofdvalidator "github.com/ofdb/validator"
)

// ValidateStoreIDs checks every purchase_links[].store_id of every size
// entry against the set of known store IDs collected from store.json
// files.
func ValidateStoreIDs(validStoreIDs map[string]struct{}, entries []SizesEntry) *ofdvalidator.ValidationResult {
	result := ofdvalidator.NewResult()

	for _, entry := range entries {
		sizes, ok := entry.Document.([]any)
		if !ok {
			continue
		}

		for sizeIdx, rawSize := range sizes {
			size, ok := rawSize.(map[string]any)
			if !ok {
				continue
			}
			links, ok := size["purchase_links"].([]any)
			if !ok {
				continue
			}

			for linkIdx, rawLink := range links {
				link, ok := rawLink.(map[string]any)
				if !ok {
					continue
				}
				storeID, ok := link["store_id"].(string)
				if !ok {
					continue
				}
				if _, known := validStoreIDs[storeID]; !known {
					result.AddError(CategoryStoreID,
						fmt.Sprintf("Invalid store_id '%s' at $[%d].purchase_links[%d]",
							storeID, sizeIdx, linkIdx),
						entry.Path)
				}
			}
		}
	}

	return result
}
