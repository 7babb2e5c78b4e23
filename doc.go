// Package agepool provides a priority worker pool with aging, plus a
// small set of supporting concurrency primitives.
//
// Design goals
//
// The package is designed around the following principles:
//
//   - Strict priority ordering with a fairness guarantee
//   - No starvation: waiting tasks gain priority over time
//   - Task execution never holds the scheduling lock
//   - Predictable shutdown with no leaked goroutines
//
// Rather than optimizing for raw throughput of uniform jobs, agepool
// optimizes for mixed workloads where urgent and background tasks
// share a fixed set of workers and background work must still make
// progress under sustained high-priority load.
//
// Architecture overview
//
// The pool is composed of three loosely coupled pieces:
//
//  1. Heap store
//     A max-heap over resident tasks keyed by effective priority.
//     Insertion and extraction are O(log n); the aging pass rebuilds
//     the heap in one O(n) sweep when orderings change.
//
//  2. Aging monitor
//     A single background goroutine that periodically raises the
//     effective priority of waiting tasks. A task earns a fixed bonus
//     for every full boost interval it has waited, so any task
//     eventually outranks a continuous flood of higher-priority
//     submissions.
//
//  3. Workers
//     A fixed set of goroutines parked on a condition variable while
//     the store is empty. A worker extracts the current maximum under
//     the lock and executes it with the lock released.
//
// Aging model
//
// Effective priority is computed as
//
//	current = original + (waited / BoostInterval) * BoostAmount
//
// with integer (floor) division on the elapsed time: a task earns the
// bonus only for each full interval. Aging is monotonic — a task's
// effective priority never decreases while resident — which makes the
// periodic pass idempotent when no time has elapsed.
//
// Ordering guarantees
//
// Extraction order is priority order at the moment of extraction, not
// submission order. Among tasks with equal effective priority the
// order is unspecified. No task runs twice, and every submitted task
// runs exactly once unless the pool is shut down while the task is
// still resident, in which case it is discarded; Shutdown stops
// dispatch, it does not drain.
//
// Error handling
//
// Errors returned by a task are retried according to the pool's (or
// the task's) retry policy with exponential backoff. A task that
// exhausts its attempts, or panics, is reported through the OnTaskError
// hook and does not affect other workers, the monitor, or the store.
//
// Companion packages
//
// The subpackages provide the simpler primitives the pool grew out of:
//
//   - blockq: a bounded blocking FIFO queue that drains on close
//   - rwlock: a starvation-free reader/writer lock
//   - future: a request/response pool returning typed result channels
package agepool
