// Package engine coordinates a full catalog validation run.
//
// The engine fans per-file tasks out to a worker pool and merges their
// findings with the collection-wide checks (store IDs, GTIN/EAN, required
// files) that cannot run per file.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	ofdvalidator "github.com/ofdb/validator"
	"github.com/ofdb/validator/dataset"
	"github.com/ofdb/validator/schema"
	"github.com/ofdb/validator/task"
	"github.com/ofdb/validator/validators"
	"github.com/ofdb/validator/worker"
)

// Engine validates catalog datasets against a fixed schema store.
// It is safe for concurrent use.
type Engine struct {
	store     *schema.Store
	validator *schema.Validator
	options   *ofdvalidator.Options
	metrics   *ofdvalidator.Metrics
	logger    *slog.Logger
}

// New creates an Engine backed by the given schema store.
func New(store *schema.Store, opts ...ofdvalidator.Option) *Engine {
	options := ofdvalidator.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Engine{
		store:     store,
		validator: schema.NewValidator(store),
		options:   options,
		metrics:   ofdvalidator.NewMetrics(),
		logger:    slog.Default().With("component", "engine"),
	}
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l != nil {
		e.logger = l.With("component", "engine")
	}
}

// Metrics returns the engine's metrics.
func (e *Engine) Metrics() *ofdvalidator.Metrics {
	return e.metrics
}

// Options returns the engine's options.
func (e *Engine) Options() *ofdvalidator.Options {
	return e.options
}

// ValidateDataSet runs every enabled check over the dataset and returns
// the aggregate findings. Per-file checks run in parallel; the
// collection-wide checks run inline before the fan-out.
func (e *Engine) ValidateDataSet(ctx context.Context, ds *dataset.DataSet) (*ofdvalidator.ValidationResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	aggregate := ofdvalidator.NewResult()
	aggregate.Merge(ds.LoadFindings)

	if e.options.ValidateMissingFiles {
		aggregate.Merge(validators.ValidateRequiredFiles(ds.Manifest))
	}
	if e.options.ValidateStoreIDs {
		aggregate.Merge(validators.ValidateStoreIDs(ds.ValidStoreIDs, ds.SizesEntries))
	}
	if e.options.ValidateGTIN {
		aggregate.Merge(validators.ValidateGTINEAN(ds.SizesEntries))
	}

	tasks := e.filterTasks(ds.Tasks())
	e.logger.Info("validation run started",
		"run_id", runID,
		"tasks", len(tasks),
		"workers", e.options.WorkerCount)

	cacheBefore := e.validator.CacheStats()
	taskResult, err := worker.Run(ctx, tasks, e.execute, e.options.WorkerCount)
	cacheAfter := e.validator.CacheStats()
	e.metrics.AddCacheStats(cacheAfter.Hits-cacheBefore.Hits, cacheAfter.Misses-cacheBefore.Misses)
	if err != nil {
		e.logger.Error("validation run aborted", "run_id", runID, "error", err)
		return nil, err
	}
	aggregate.Merge(taskResult)

	e.logger.Info("validation run finished",
		"run_id", runID,
		"duration", time.Since(start),
		"errors", aggregate.ErrorCount(),
		"warnings", aggregate.WarningCount())
	return aggregate, nil
}

// filterTasks drops tasks whose check family is disabled.
func (e *Engine) filterTasks(tasks []task.Task) []task.Task {
	filtered := tasks[:0:0]
	for _, t := range tasks {
		switch t.Kind {
		case task.KindJSON:
			if !e.options.ValidateJSONFiles {
				continue
			}
		case task.KindLogo:
			if !e.options.ValidateLogos {
				continue
			}
		case task.KindFolder:
			if !e.options.ValidateFolderNames {
				continue
			}
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// execute dispatches one task to its check and records metrics.
func (e *Engine) execute(t task.Task) *ofdvalidator.ValidationResult {
	start := time.Now()

	var result *ofdvalidator.ValidationResult
	switch t.Kind {
	case task.KindJSON:
		result = validators.ValidateJSON(t.Document, t.SchemaName, e.validator, t.Path)
	case task.KindLogo:
		result = validators.ValidateLogo(t.Data, t.Filename, t.DeclaredName, t.Path, e.logoBounds())
	case task.KindFolder:
		result = validators.ValidateFolderName(t.FolderName, t.Document, t.Filename, t.JSONKey, t.Path)
	default:
		result = ofdvalidator.NewResult()
	}

	e.metrics.RecordTask(time.Since(start), result.ErrorCount(), result.WarningCount())
	return result
}

func (e *Engine) logoBounds() validators.LogoBounds {
	return validators.LogoBounds{Min: e.options.LogoMinSize, Max: e.options.LogoMaxSize}
}

// ValidateJSONFiles validates only the dataset's JSON entries.
func (e *Engine) ValidateJSONFiles(ctx context.Context, ds *dataset.DataSet) (*ofdvalidator.ValidationResult, error) {
	tasks := make([]task.Task, 0, len(ds.JSONEntries))
	for _, entry := range ds.JSONEntries {
		tasks = append(tasks, task.JSON(entry.Path, entry.SchemaName, entry.Document))
	}
	result, err := worker.Run(ctx, tasks, e.execute, e.options.WorkerCount)
	if err != nil {
		return nil, err
	}
	result.Merge(ds.LoadFindings)
	return result, nil
}

// ValidateLogos validates only the dataset's logo entries.
func (e *Engine) ValidateLogos(ctx context.Context, ds *dataset.DataSet) (*ofdvalidator.ValidationResult, error) {
	tasks := make([]task.Task, 0, len(ds.LogoEntries))
	for _, entry := range ds.LogoEntries {
		tasks = append(tasks, task.Logo(entry.Path, entry.Filename, entry.Data, entry.DeclaredName))
	}
	return worker.Run(ctx, tasks, e.execute, e.options.WorkerCount)
}

// ValidateFolderNames validates only the dataset's folder entries.
func (e *Engine) ValidateFolderNames(ctx context.Context, ds *dataset.DataSet) (*ofdvalidator.ValidationResult, error) {
	tasks := make([]task.Task, 0, len(ds.FolderEntries))
	for _, entry := range ds.FolderEntries {
		tasks = append(tasks, task.Folder(entry.Path, entry.FolderName, entry.Document, entry.JSONFile, entry.JSONKey))
	}
	return worker.Run(ctx, tasks, e.execute, e.options.WorkerCount)
}

// ValidateStoreIDs checks every purchase link's store_id against the
// loaded stores.
func (e *Engine) ValidateStoreIDs(ds *dataset.DataSet) *ofdvalidator.ValidationResult {
	return validators.ValidateStoreIDs(ds.ValidStoreIDs, ds.SizesEntries)
}

// ValidateGTIN checks GTIN and EAN fields across all sizes entries.
func (e *Engine) ValidateGTIN(ds *dataset.DataSet) *ofdvalidator.ValidationResult {
	return validators.ValidateGTINEAN(ds.SizesEntries)
}

// ValidateMissingFiles checks that every catalog directory has its
// required JSON files.
func (e *Engine) ValidateMissingFiles(ds *dataset.DataSet) *ofdvalidator.ValidationResult {
	return validators.ValidateRequiredFiles(ds.Manifest)
}
