// Package ofdvalidator validates the Open Filament Database catalog: a
// hierarchy of JSON documents (brand → material → filament → variant, plus a
// parallel store catalog) and their logo images, checked against a fixed set
// of JSON schemas and cross-referential business rules.
//
// The root package holds the value types shared by every component: the
// ValidationError record, the ValidationResult aggregate, run Options and
// Metrics. The heavy lifting lives in the subpackages:
//
//   - schema:     schema store, $ref resolution and JSON Schema validation
//   - imagemeta:  header-only PNG/JPEG dimension decoding
//   - task:       the closed set of unit-of-work descriptors
//   - worker:     the parallel fan-out/fan-in orchestrator
//   - validators: the individual catalog checks
//   - dataset:    filesystem walk producing an in-memory DataSet
//   - engine:     ties the above together into one validation run
//
// A minimal run:
//
//	store, _ := schema.NewStoreFromFS(schemas.Files, ".")
//	ds := dataset.FromDirectories("data", "stores", store)
//	eng := engine.New(store)
//	result, err := eng.ValidateDataSet(context.Background(), ds)
//	if err != nil {
//	    // a worker crashed; sibling results are unreliable
//	}
//	if !result.IsValid() {
//	    // result.Errors holds every finding
//	}
package ofdvalidator
