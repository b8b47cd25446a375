// Package fileproc provides concurrent path processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a path.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects multiple processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d inputs failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker
// count. Module and trace ingestion is I/O dominated.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each path is processed.
type ProgressFunc func()

// ErrorFunc is called when a path fails to process. If nil, errors are
// silently skipped.
type ErrorFunc func(path string, err error)

// ForEachPath processes paths in parallel, calling fn for each one.
// Results are collected in arbitrary order; failed paths are skipped.
func ForEachPath[T any](paths []string, fn func(string) (T, error)) []T {
	return ForEachPathN(paths, 0, fn, nil, nil)
}

// ForEachPathN processes paths with configurable worker count and callbacks.
// If maxWorkers is <= 0, defaults to 2x NumCPU.
func ForEachPathN[T any](paths []string, maxWorkers int, fn func(string) (T, error), onProgress ProgressFunc, onError ErrorFunc) []T {
	if len(paths) == 0 {
		return nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, 0, len(paths))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range paths {
		p.Go(func() {
			result, err := fn(path)

			if onProgress != nil {
				onProgress()
			}
			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}

// ForEachPathCollectErrors processes paths in parallel and collects all
// errors. Returns results and any errors that occurred.
func ForEachPathCollectErrors[T any](paths []string, fn func(string) (T, error)) ([]T, *ProcessingErrors) {
	return ForEachPathCollectErrorsWithProgress(paths, fn, nil)
}

// ForEachPathCollectErrorsWithProgress adds a progress callback.
func ForEachPathCollectErrorsWithProgress[T any](paths []string, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *ProcessingErrors) {
	if len(paths) == 0 {
		return nil, nil
	}

	errs := &ProcessingErrors{}
	results := ForEachPathN(paths, 0, fn, onProgress, errs.Add)

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}

// ForEachPathWithContext processes paths in parallel with context
// cancellation support. Paths not yet started when the context is
// cancelled are recorded as failed.
func ForEachPathWithContext[T any](ctx context.Context, paths []string, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *ProcessingErrors) {
	if len(paths) == 0 {
		return nil, nil
	}

	maxWorkers := runtime.NumCPU() * DefaultWorkerMultiplier
	results := make([]T, 0, len(paths))
	errs := &ProcessingErrors{}
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx)
	for _, path := range paths {
		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				errs.Add(path, ctx.Err())
				if onProgress != nil {
					onProgress()
				}
				return ctx.Err()
			default:
			}

			result, err := fn(path)

			if onProgress != nil {
				onProgress()
			}
			if err != nil {
				errs.Add(path, err)
				return nil // individual failures do not stop the pool
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait() // context errors are already captured in errs

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}
