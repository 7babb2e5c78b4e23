// Package blockq provides a bounded blocking FIFO queue.
//
// The queue is a classic monitor: one mutex, two condition variables.
// Producers block while the queue is full, consumers block while it is
// empty. Close wakes everyone; after Close, Push fails immediately but
// Pop keeps returning the remaining items until the queue is drained.
package blockq

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Push after Close, and by Pop once the
	// queue is both closed and drained.
	ErrClosed = errors.New("blockq: queue closed")

	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("blockq: capacity must be positive")
)

// Queue is a fixed-capacity FIFO safe for any number of concurrent
// producers and consumers.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf        []T // circular buffer
	head, tail int // read/write indices
	size       int
	closed     bool
}

// New creates a queue holding at most capacity items.
func New[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	q := &Queue[T]{buf: make([]T, capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// Push appends v, blocking while the queue is full. It returns
// ErrClosed if the queue is closed before the item could be stored.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == len(q.buf) && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}

	q.buf[q.tail] = v
	q.tail++
	if q.tail == len(q.buf) {
		q.tail = 0
	}
	q.size++

	q.notEmpty.Signal()
	return nil
}

// Pop removes and returns the oldest item, blocking while the queue
// is empty. After Close it keeps draining buffered items and returns
// ErrClosed only once nothing is left.
func (q *Queue[T]) Pop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.size == 0 {
		var zero T
		return zero, ErrClosed
	}

	v := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // release the reference
	q.head++
	if q.head == len(q.buf) {
		q.head = 0
	}
	q.size--

	q.notFull.Signal()
	return v, nil
}

// Close marks the queue as shut down and wakes all blocked producers
// and consumers. Idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the number of buffered items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int { return len(q.buf) }
