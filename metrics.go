package agepool

import (
	"sync/atomic"
	"time"
)

// MetricsPolicy defines hooks used by the pool to report queueing,
// execution, and aging activity.
//
// Implementations must be safe for concurrent use.
// All methods are expected to be lightweight and non-blocking.
type MetricsPolicy interface {

	// IncQueued increments the resident tasks counter.
	IncQueued()

	// DecQueued decrements the resident tasks counter.
	DecQueued()

	// IncExecuted increments the executed tasks counter.
	IncExecuted()

	// AddDropped records n tasks discarded at shutdown without
	// being executed. The dropped tasks were never reported through
	// DecQueued, so implementations tracking a queued gauge should
	// remove them here.
	AddDropped(n int64)

	// SetMaxAge records the longest wait time observed among
	// resident tasks during the last aging pass.
	SetMaxAge(d time.Duration)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes are optimized for hot paths.
// Reads are intended for cold-path observation.
type AtomicMetrics struct {
	// executed is the total number of tasks processed.
	executed atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// queued is the current number of resident tasks.
	queued atomic.Int64

	_ [56]byte

	// dropped is the total number of tasks discarded at shutdown.
	dropped atomic.Int64

	// maxAge is the last reported maximum wait, in nanoseconds.
	maxAge atomic.Int64
}

// Executed returns the total number of executed tasks.
// Intended for cold-path observation.
func (m *AtomicMetrics) Executed() uint64 {
	return m.executed.Load()
}

// Queued returns the current number of resident tasks.
// Intended for cold-path observation.
func (m *AtomicMetrics) Queued() int64 {
	return m.queued.Load()
}

// Dropped returns the total number of tasks discarded at shutdown.
func (m *AtomicMetrics) Dropped() int64 {
	return m.dropped.Load()
}

// MaxAge returns the longest wait observed during the last aging pass.
func (m *AtomicMetrics) MaxAge() time.Duration {
	return time.Duration(m.maxAge.Load())
}

// IncQueued increments the resident tasks counter by one.
func (m *AtomicMetrics) IncQueued() {
	m.queued.Add(1)
}

// DecQueued decrements the resident tasks counter by one.
func (m *AtomicMetrics) DecQueued() {
	m.queued.Add(-1)
}

// IncExecuted increments the executed tasks counter by one.
func (m *AtomicMetrics) IncExecuted() {
	m.executed.Add(1)
}

// AddDropped adds n to the dropped tasks counter.
func (m *AtomicMetrics) AddDropped(n int64) {
	m.dropped.Add(n)
	m.queued.Add(-n)
}

// SetMaxAge stores the last observed maximum wait.
func (m *AtomicMetrics) SetMaxAge(d time.Duration) {
	m.maxAge.Store(int64(d))
}

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
//
// It can be used when metrics collection is disabled and
// zero overhead is desired.
type NoopMetrics struct{}

func (m *NoopMetrics) IncQueued()                {}
func (m *NoopMetrics) DecQueued()                {}
func (m *NoopMetrics) IncExecuted()              {}
func (m *NoopMetrics) AddDropped(n int64)        {}
func (m *NoopMetrics) SetMaxAge(d time.Duration) {}
