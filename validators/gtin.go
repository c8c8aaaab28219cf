package validators

import (
	"fmt"
	"regexp"

	ofdvalidator "github.com/ofdb/validator"
)

// Categories for product code findings.
const (
	CategoryGTIN    = "GTIN"
	CategoryEAN     = "EAN"
	CategoryGTINEAN = "GTIN/EAN"
	CategoryStoreID = "StoreID"
)

// Product code patterns, built at package init; no lazily-initialized
// globals.
var (
	gtinRe = regexp.MustCompile(`^[0-9]{12,13}$`)
	eanRe  = regexp.MustCompile(`^[0-9]{13}$`)
)

// SizesEntry is one parsed sizes.json document plus its source path.
type SizesEntry struct {
	Path     string
	Document any
}

// ValidateGTINEAN checks the gtin and ean fields of every size entry:
// gtin must be 12 or 13 digits, ean exactly 13, and when both are 13
// digits they must agree.
func ValidateGTINEAN(entries []SizesEntry) *ofdvalidator.ValidationResult {
	result := ofdvalidator.NewResult()

	for _, entry := range entries {
		sizes, ok := entry.Document.([]any)
		if !ok {
			continue
		}

		for idx, raw := range sizes {
			size, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			gtin, hasGTIN := size["gtin"].(string)
			ean, hasEAN := size["ean"].(string)

			if hasGTIN && !gtinRe.MatchString(gtin) {
				result.AddError(CategoryGTIN,
					fmt.Sprintf("Invalid gtin at $[%d]: must be 12 or 13 digits", idx),
					entry.Path)
			}
			if hasEAN && !eanRe.MatchString(ean) {
				result.AddError(CategoryEAN,
					fmt.Sprintf("Invalid ean at $[%d]: must be exactly 13 digits", idx),
					entry.Path)
			}
			if hasGTIN && hasEAN && len(gtin) == 13 && len(ean) == 13 && gtin != ean {
				result.AddError(CategoryGTINEAN,
					fmt.Sprintf("Mismatch at $[%d]: gtin and ean are both 13 digits but not equal", idx),
					entry.Path)
			}
		}
	}

	return result
}
