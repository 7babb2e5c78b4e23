package agepool

import (
	"container/heap"
	"time"
)

const storeCap = 2048

// taskHeap — max-heap по curPrio
type taskHeap[T any] []*item[T]

func (h taskHeap[T]) Len() int { return len(h) }
func (h taskHeap[T]) Less(i, j int) bool {
	return h[i].curPrio > h[j].curPrio // max-heap
}
func (h taskHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap[T]) Push(x any) {
	it := x.(*item[T])
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *taskHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// store holds the resident tasks of a pool, ordered by their current
// effective priority. Tasks with equal priority come out in no
// particular order.
//
// The store performs no locking of its own: every method must be
// called with the owning pool's lock held. Timestamps are passed in
// explicitly so the aging arithmetic can be exercised without a real
// clock.
type store[T any] struct {
	h             taskHeap[T]
	boostInterval time.Duration
	boostAmount   int
	maxAge        time.Duration
}

// newStore creates an empty store initialized as a max-heap.
// boostInterval and boostAmount define the aging formula applied by
// age: a resident task gains boostAmount priority points for every
// full boostInterval it has waited.
func newStore[T any](boostInterval time.Duration, boostAmount int) *store[T] {
	s := &store[T]{boostInterval: boostInterval, boostAmount: boostAmount}
	s.h = make(taskHeap[T], 0, storeCap) // preallocate
	heap.Init(&s.h)
	return s
}

// insert adds a new task to the store. O(log n).
func (s *store[T]) insert(it *item[T]) {
	heap.Push(&s.h, it)
}

// extractMax removes and returns the resident task with the highest
// current priority. Returns nil and false if the store is empty.
func (s *store[T]) extractMax() (*item[T], bool) {
	if s.h.Len() == 0 {
		return nil, false
	}
	it := heap.Pop(&s.h).(*item[T])
	return it, true
}

// age recomputes the current priority of every resident task.
//
// For each task it derives an age bonus from the time waited so far:
//
//	bonus = (now - queuedAt) / boostInterval * boostAmount
//
// The division is integer division on durations, so a task earns the
// bonus only for each *full* boost interval elapsed. The new priority
// is applied only when it exceeds the stored one, which keeps aging
// monotonic and makes repeated passes with no time elapsed a no-op.
//
// When at least one priority changed the heap is rebuilt in one O(n)
// sweep, cheaper than sifting each changed element individually.
// age reports whether any priority changed. The maximum observed task
// age is retained and exposed via oldest for metrics reporting.
func (s *store[T]) age(now time.Time) bool {
	var maxAge time.Duration
	dirty := false

	for i := range s.h {
		waited := now.Sub(s.h[i].queuedAt)
		if waited > maxAge {
			maxAge = waited
		}
		bonus := int(waited/s.boostInterval) * s.boostAmount
		if np := s.h[i].origPrio + bonus; np > s.h[i].curPrio {
			s.h[i].curPrio = np
			dirty = true
		}
	}

	s.maxAge = maxAge
	if dirty {
		heap.Init(&s.h)
	}
	return dirty
}

// drop discards every resident task and returns how many were
// discarded. Used at shutdown: resident tasks are not executed.
func (s *store[T]) drop() int {
	n := s.h.Len()
	for i := range s.h {
		s.h[i] = nil
	}
	s.h = s.h[:0]
	s.maxAge = 0
	return n
}

// len returns the number of tasks currently resident.
func (s *store[T]) len() int { return s.h.Len() }

// oldest returns the maximum waiting time observed during the last
// aging pass.
func (s *store[T]) oldest() time.Duration { return s.maxAge }
