// Package validators implements the individual catalog checks: JSON
// schema conformance, logo files, folder names, store ID references,
// GTIN/EAN codes and required-file presence.
//
// Every check returns a ValidationResult; recoverable problems become
// findings, never errors or panics. Checks are pure functions of their
// inputs (the logo check reads nothing — the loader hands it bytes), so
// they can run concurrently without coordination.
package validators
