package ofdvalidator

import (
	json "github.com/goccy/go-json"
)

// ValidationResult is an ordered collection of validation findings.
//
// Results are built per task and merged into a run-level aggregate. Because
// tasks run in parallel the order of Errors varies between runs; only the
// counts and the set of findings are stable. Merge is associative and
// commutative with respect to both.
//
// A ValidationResult is not safe for concurrent mutation; the orchestrator
// merges per-task results from a single collector goroutine.
type ValidationResult struct {
	Errors []ValidationError `json:"errors"`
}

// NewResult returns an empty, valid result.
func NewResult() *ValidationResult {
	return &ValidationResult{}
}

// Add appends a finding.
func (r *ValidationResult) Add(e ValidationError) {
	r.Errors = append(r.Errors, e)
}

// AddError appends an Error-level finding.
func (r *ValidationResult) AddError(category, message, path string) {
	r.Add(NewError(category, message, path))
}

// AddWarning appends a Warning-level finding.
func (r *ValidationResult) AddWarning(category, message, path string) {
	r.Add(NewWarning(category, message, path))
}

// Merge appends every finding of other into r. other is not modified.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
}

// IsValid reports whether the result contains no Error-level findings.
// Warnings do not affect validity.
func (r *ValidationResult) IsValid() bool {
	for _, e := range r.Errors {
		if e.IsError() {
			return false
		}
	}
	return true
}

// ErrorCount returns the number of Error-level findings.
func (r *ValidationResult) ErrorCount() int {
	n := 0
	for _, e := range r.Errors {
		if e.IsError() {
			n++
		}
	}
	return n
}

// WarningCount returns the number of Warning-level findings.
func (r *ValidationResult) WarningCount() int {
	n := 0
	for _, e := range r.Errors {
		if !e.IsError() {
			n++
		}
	}
	return n
}

// ByCategory groups findings by their category.
func (r *ValidationResult) ByCategory() map[string][]ValidationError {
	grouped := make(map[string][]ValidationError)
	for _, e := range r.Errors {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	return grouped
}

// resultJSON is the serialized form used at CLI/API boundaries.
type resultJSON struct {
	Errors       []ValidationError `json:"errors"`
	ErrorCount   int               `json:"error_count"`
	WarningCount int               `json:"warning_count"`
	IsValid      bool              `json:"is_valid"`
}

// MarshalJSON serializes the result with derived counts and validity.
func (r *ValidationResult) MarshalJSON() ([]byte, error) {
	errs := r.Errors
	if errs == nil {
		errs = []ValidationError{}
	}
	return json.Marshal(resultJSON{
		Errors:       errs,
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		IsValid:      r.IsValid(),
	})
}

// UnmarshalJSON accepts the form produced by MarshalJSON. The derived fields
// are recomputed from the findings, not trusted.
func (r *ValidationResult) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Errors = raw.Errors
	return nil
}
