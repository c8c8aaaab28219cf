package schema

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	ofdvalidator "github.com/ofdb/validator"
	"github.com/ofdb/validator/cache"
)

// Category under which all schema findings are reported.
const Category = "JSON"

// Validator evaluates JSON documents against the named catalog schemas.
//
// Compiled schemas are built lazily on first use and cached; the cache is
// safe for concurrent first-uses and serves published entries without
// contention, so one Validator is shared across all workers of a run.
type Validator struct {
	store    *Store
	compiled *cache.Cache[string, *jsonschema.Schema]
	printer  *message.Printer
}

// NewValidator creates a Validator over a Store.
func NewValidator(store *Store) *Validator {
	return &Validator{
		store:    store,
		compiled: cache.New[string, *jsonschema.Schema](),
		printer:  message.NewPrinter(language.English),
	}
}

// CacheStats returns the compiled-schema cache counters.
func (v *Validator) CacheStats() cache.Stats {
	return v.compiled.Stats()
}

// Validate evaluates doc against the schema registered under schemaName
// and collects every violation; one malformed field never hides another.
// pathLabel locates the source file in the findings and may be empty.
//
// Schema-level failures (unknown name, compilation error) produce exactly
// one Error-level finding and stop: a schema that did not compile cannot
// be partially applied.
func (v *Validator) Validate(doc any, schemaName, pathLabel string) *ofdvalidator.ValidationResult {
	result := ofdvalidator.NewResult()

	if _, ok := v.store.Get(schemaName); !ok {
		result.AddError(Category, fmt.Sprintf("Schema '%s' not found", schemaName), pathLabel)
		return result
	}

	sch, err := v.compiled.GetOrCompute(schemaName, func() (*jsonschema.Schema, error) {
		return v.compile(schemaName)
	})
	if err != nil {
		result.AddError(Category, fmt.Sprintf("Schema compilation error: %v", err), pathLabel)
		return result
	}

	err = sch.Validate(doc)
	if err == nil {
		return result
	}

	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.AddError(Category, fmt.Sprintf("Schema validation failed: %v", err), pathLabel)
		return result
	}

	for _, leaf := range leafCauses(verr) {
		result.AddError(
			Category,
			fmt.Sprintf("Schema validation failed: %s at %s",
				leaf.ErrorKind.LocalizedString(v.printer),
				instancePointer(leaf.InstanceLocation)),
			pathLabel,
		)
	}

	return result
}

func (v *Validator) compile(schemaName string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.UseLoader(newRefLoader(v.store))
	return c.Compile(compileBase + Filename(schemaName))
}

// leafCauses flattens a validation error tree into its leaves, one per
// concrete violation.
func leafCauses(e *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(e.Causes) == 0 {
		return []*jsonschema.ValidationError{e}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range e.Causes {
		leaves = append(leaves, leafCauses(c)...)
	}
	return leaves
}

// instancePointer renders an instance location as a JSON pointer, "/" for
// the document root.
func instancePointer(loc []string) string {
	if len(loc) == 0 {
		return "/"
	}
	return "/" + strings.Join(loc, "/")
}
