// Package dispatch runs blocking calls on worker goroutines so callers can wait
// on them alongside their own context.
//
// Cancellation only covers the wait for a free slot. Once a call is handed to a
// worker it runs to completion and Do waits for it; a hung call hangs Do.
package dispatch

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

const DefaultMaxConcurrent = 8

type Dispatcher struct {
	slots *semaphore.Weighted
}

type Options struct {
	MaxConcurrent int
}

func New(options *Options) *Dispatcher {
	maxConcurrent := DefaultMaxConcurrent
	if options != nil && options.MaxConcurrent > 0 {
		maxConcurrent = options.MaxConcurrent
	}
	return &Dispatcher{
		slots: semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// PanicError is returned when the dispatched call panics.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v", e.Value)
}

type result[T any] struct {
	value T
	err   error
}

// Do runs fn on a worker goroutine and returns its result.
func Do[T any](ctx context.Context, d *Dispatcher, fn func() (T, error)) (T, error) {
	var zero T
	if err := d.slots.Acquire(ctx, 1); err != nil {
		return zero, fmt.Errorf("waiting for dispatch slot: %w", err)
	}
	done := make(chan result[T], 1)
	go func() {
		defer d.slots.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- result[T]{err: &PanicError{Value: r}}
			}
		}()
		v, err := fn()
		done <- result[T]{value: v, err: err}
	}()
	res := <-done
	return res.value, res.err
}
