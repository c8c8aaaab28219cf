package ofdvalidator

import (
	"runtime"
)

// Option configures a validation run.
type Option func(*Options)

// Options holds all configuration for a validation run.
type Options struct {
	// WorkerCount is the number of parallel workers for the task fan-out.
	// Zero or negative selects the default (available parallelism minus one,
	// minimum 1).
	WorkerCount int

	// LogoMinSize and LogoMaxSize bound raster logo dimensions in pixels.
	LogoMinSize uint32
	LogoMaxSize uint32

	// Validator families. All enabled by default; single-family entry
	// points on the engine ignore these.
	ValidateJSONFiles    bool
	ValidateLogos        bool
	ValidateFolderNames  bool
	ValidateStoreIDs     bool
	ValidateGTIN         bool
	ValidateMissingFiles bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		WorkerCount: DefaultWorkerCount(),
		LogoMinSize: 100,
		LogoMaxSize: 400,

		ValidateJSONFiles:    true,
		ValidateLogos:        true,
		ValidateFolderNames:  true,
		ValidateStoreIDs:     true,
		ValidateGTIN:         true,
		ValidateMissingFiles: true,
	}
}

// DefaultWorkerCount returns the default fan-out width: available
// parallelism minus a reserved CPU, minimum 1.
func DefaultWorkerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// WithWorkerCount overrides the worker pool size.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		o.WorkerCount = n
	}
}

// WithLogoSizeBounds overrides the raster logo dimension bounds.
func WithLogoSizeBounds(minPx, maxPx uint32) Option {
	return func(o *Options) {
		o.LogoMinSize = minPx
		o.LogoMaxSize = maxPx
	}
}

// WithJSONFiles enables or disables JSON schema validation.
func WithJSONFiles(enable bool) Option {
	return func(o *Options) {
		o.ValidateJSONFiles = enable
	}
}

// WithLogos enables or disables logo validation.
func WithLogos(enable bool) Option {
	return func(o *Options) {
		o.ValidateLogos = enable
	}
}

// WithFolderNames enables or disables folder name validation.
func WithFolderNames(enable bool) Option {
	return func(o *Options) {
		o.ValidateFolderNames = enable
	}
}

// WithStoreIDs enables or disables store ID reference validation.
func WithStoreIDs(enable bool) Option {
	return func(o *Options) {
		o.ValidateStoreIDs = enable
	}
}

// WithGTIN enables or disables GTIN/EAN validation.
func WithGTIN(enable bool) Option {
	return func(o *Options) {
		o.ValidateGTIN = enable
	}
}

// WithMissingFiles enables or disables required-file checks.
func WithMissingFiles(enable bool) Option {
	return func(o *Options) {
		o.ValidateMissingFiles = enable
	}
}
