package ofdvalidator

import (
	"sync/atomic"
	"time"
)

// Metrics tracks validation run counters using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	tasksTotal atomic.Uint64
	tasksValid atomic.Uint64

	// Timing (nanoseconds)
	taskTimeTotal atomic.Uint64
	taskTimeMin   atomic.Uint64
	taskTimeMax   atomic.Uint64

	errorsTotal   atomic.Uint64
	warningsTotal atomic.Uint64

	// Compiled-schema cache
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so the first sample becomes the minimum
	m.taskTimeMin.Store(^uint64(0))
	return m
}

// RecordTask records one completed task.
func (m *Metrics) RecordTask(duration time.Duration, errors, warnings int) {
	m.tasksTotal.Add(1)
	if errors == 0 {
		m.tasksValid.Add(1)
	}
	m.errorsTotal.Add(uint64(errors))
	m.warningsTotal.Add(uint64(warnings))

	ns := uint64(duration.Nanoseconds())
	m.taskTimeTotal.Add(ns)

	for {
		old := m.taskTimeMin.Load()
		if ns >= old || m.taskTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.taskTimeMax.Load()
		if ns <= old || m.taskTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordCacheHit records a compiled-schema cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a compiled-schema cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// AddCacheStats folds a batch of compiled-schema cache hits and misses
// into the counters, for callers that read the cache's own counters
// instead of observing individual lookups.
func (m *Metrics) AddCacheStats(hits, misses uint64) {
	m.cacheHits.Add(hits)
	m.cacheMisses.Add(misses)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	TasksTotal    uint64
	TasksValid    uint64
	ErrorsTotal   uint64
	WarningsTotal uint64
	CacheHits     uint64
	CacheMisses   uint64
	TaskTimeAvg   time.Duration
	TaskTimeMin   time.Duration
	TaskTimeMax   time.Duration
}

// Snapshot returns a consistent-enough copy of the counters. Individual
// counters are read atomically; the snapshot as a whole is not a
// transaction.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		TasksTotal:    m.tasksTotal.Load(),
		TasksValid:    m.tasksValid.Load(),
		ErrorsTotal:   m.errorsTotal.Load(),
		WarningsTotal: m.warningsTotal.Load(),
		CacheHits:     m.cacheHits.Load(),
		CacheMisses:   m.cacheMisses.Load(),
	}
	if s.TasksTotal > 0 {
		s.TaskTimeAvg = time.Duration(m.taskTimeTotal.Load() / s.TasksTotal)
		s.TaskTimeMin = time.Duration(m.taskTimeMin.Load())
		s.TaskTimeMax = time.Duration(m.taskTimeMax.Load())
	}
	return s
}
