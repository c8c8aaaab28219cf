package validators

import (
	ofdvalidator "github.com/ofdb/validator"
	"github.com/ofdb/validator/schema"
)

// ValidateJSON checks a parsed document against a named catalog schema.
// All schema machinery (lookup, compilation, $ref resolution, violation
// collection) lives in the schema package; this keeps the check set
// complete in one place.
func ValidateJSON(document any, schemaName string, sv *schema.Validator, pathLabel string) *ofdvalidator.ValidationResult {
	return sv.Validate(document, schemaName, pathLabel)
}
