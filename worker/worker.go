// Package worker provides the parallel fan-out/fan-in orchestrator for
// validation tasks.
//
// The model is embarrassingly parallel map/reduce: a fixed-size pool of
// goroutines consumes an immutable task list with no ordering dependency
// and no communication between workers, and per-task results are merged
// into one aggregate by concatenation. Nothing about the final error order
// is guaranteed; counts and set membership are.
package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	ofdvalidator "github.com/ofdb/validator"
	"github.com/ofdb/validator/task"
)

// Executor evaluates one task. A task that reports Error-level findings is
// a successful execution that found problems, not a failure.
type Executor func(task.Task) *ofdvalidator.ValidationResult

// panicError is the run-fatal error produced when an executor panics.
// Results from sibling tasks would be partially lost, so the whole run
// fails loudly instead of returning a silently incomplete aggregate.
type panicError struct {
	taskPath string
	value    any
	stack    []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("worker panicked on task %q: %v\n%s", e.taskPath, e.value, e.stack)
}

// Run applies executor to every task across a pool of workers and merges
// the per-task results into one aggregate.
//
// workers <= 0 selects the default pool size (available parallelism minus
// one, minimum 1); the pool never exceeds the task count. An empty task
// list returns an empty, valid aggregate without spinning up workers.
//
// Failed validations are findings, not errors; the returned error is
// non-nil only when an executor panicked or ctx was canceled mid-run, and
// the partial aggregate must then be discarded.
func Run(ctx context.Context, tasks []task.Task, executor Executor, workers int) (*ofdvalidator.ValidationResult, error) {
	aggregate := ofdvalidator.NewResult()
	if len(tasks) == 0 {
		return aggregate, nil
	}

	if workers <= 0 {
		workers = ofdvalidator.DefaultWorkerCount()
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan task.Task)
	results := make(chan *ofdvalidator.ValidationResult, workers)
	panics := make(chan *panicError, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for t := range jobs {
				res, perr := execute(executor, t)
				if perr != nil {
					panics <- perr
					return
				}
				results <- res
			}
		}()
	}

	// Feed tasks; stop early on cancellation or when every worker has
	// exited (a panic can drain the pool before the list is consumed).
	workersDone := make(chan struct{})
	go func() {
		defer close(jobs)
		for _, t := range tasks {
			select {
			case <-ctx.Done():
				return
			case <-workersDone:
				return
			case jobs <- t:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(workersDone)
		close(results)
		close(panics)
	}()

	for res := range results {
		aggregate.Merge(res)
	}

	if perr, ok := <-panics; ok {
		return nil, perr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// execute runs one task, converting a panic into a panicError instead of
// letting it tear down the process.
func execute(executor Executor, t task.Task) (res *ofdvalidator.ValidationResult, perr *panicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = &panicError{taskPath: t.Path, value: r, stack: debug.Stack()}
		}
	}()
	return executor(t), nil
}
