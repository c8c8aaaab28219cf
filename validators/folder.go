package validators

import (
	"fmt"
	"strings"

	ofdvalidator "github.com/ofdb/validator"
)

// CategoryFolder is the category for folder name findings.
const CategoryFolder = "Folder"

// illegalFolderChars are characters that cannot appear in folder names on
// common filesystems. When the expected name contains one of these the
// mismatch is expected and the finding is suppressed.
const illegalFolderChars = `#%&{}\<>*?/$!'":@` + "`|="

// CleanseFolderName normalizes a JSON field value into the folder name it
// should map to: slashes become spaces, surrounding whitespace is dropped.
func CleanseFolderName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "/", " "))
}

// ValidateFolderName checks that a folder's actual name matches the
// cleansed value of jsonKey inside the folder's JSON document. A nil
// document means jsonFile was absent from the folder, which is an error
// in its own right. A document without the key produces no finding;
// neither does a mismatch whose expected name could never be a folder
// name.
func ValidateFolderName(actualFolderName string, document any, jsonFile, jsonKey, pathLabel string) *ofdvalidator.ValidationResult {
	result := ofdvalidator.NewResult()

	if document == nil {
		result.AddError(CategoryFolder, "Missing "+jsonFile, pathLabel)
		return result
	}

	m, ok := document.(map[string]any)
	if !ok {
		return result
	}
	raw, ok := m[jsonKey].(string)
	if !ok {
		return result
	}

	expected := CleanseFolderName(raw)
	if actualFolderName == expected {
		return result
	}

	if strings.ContainsAny(expected, illegalFolderChars) {
		return result
	}

	result.AddError(CategoryFolder,
		fmt.Sprintf("Folder name '%s' does not match '%s' value '%s' in %s",
			actualFolderName, jsonKey, expected, jsonFile),
		pathLabel)
	return result
}
