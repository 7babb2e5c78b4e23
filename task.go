package agepool

import (
	"context"
	"time"
)

// TaskFunc is the function executed by a worker for a given task payload.
type TaskFunc[T any] func(T) error

// Task represents a single unit of work submitted to the pool.
//
// Payload is passed to Fn when executed.
// Ctx controls cancellation between retry attempts and carries the
// logger used for task-scoped log records.
// Cleanup, if set, runs after the task finishes, whether or not it
// succeeded or panicked.
// Retry overrides the pool's default retry policy for this task;
// zero fields fall back to the pool defaults.
type Task[T any] struct {
	Payload T
	Fn      TaskFunc[T]
	Ctx     context.Context
	Cleanup func()
	Retry   *RetryPolicy
}

// item is a resident task inside the heap store.
//
// An item carries the user-facing Task plus the scheduling state: the
// immutable priority assigned at Submit time, the current (aged)
// priority the heap orders by, and the enqueue timestamp the aging
// pass measures wait time from. The container/heap implementation
// requires that each item track its index within the heap.
type item[T any] struct {
	task Task[T]

	// label identifies the task in logs and error reports.
	label string

	// origPrio is the user-provided priority supplied at Submit time.
	// Never changes while the item is resident.
	origPrio int

	// curPrio is the effective priority, recomputed during aging.
	// Monotonically non-decreasing: aging only raises it.
	curPrio int

	// queuedAt records when the task entered the store.
	queuedAt time.Time

	// index is the element's current position in the heap,
	// maintained by taskHeap for heap.Interface.
	index int
}
