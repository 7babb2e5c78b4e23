// Package rwlock provides a reader/writer lock that does not starve
// writers: once a writer is waiting, new readers queue up behind it.
package rwlock

import "sync"

// Lock allows any number of concurrent readers or a single writer.
//
// Admission policy: a reader enters only while no writer is active
// and none is waiting; a writer enters only while no readers and no
// other writer are active. Pending writers therefore overtake newly
// arriving readers, so a continuous stream of readers cannot hold a
// writer out indefinitely.
//
// The zero value is ready to use.
type Lock struct {
	mu sync.Mutex
	cv *sync.Cond

	activeReaders  int
	waitingWriters int
	writerActive   bool
}

func (l *Lock) cond() *sync.Cond {
	if l.cv == nil {
		l.cv = sync.NewCond(&l.mu)
	}
	return l.cv
}

// RLock acquires the lock for reading, blocking while a writer is
// active or waiting.
func (l *Lock) RLock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cv := l.cond()
	for l.writerActive || l.waitingWriters > 0 {
		cv.Wait()
	}
	l.activeReaders++
}

// RUnlock releases a read lock. The last reader out wakes any
// waiting writers.
func (l *Lock) RUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.activeReaders == 0 {
		panic("rwlock: RUnlock of unlocked Lock")
	}
	l.activeReaders--
	if l.activeReaders == 0 {
		l.cond().Broadcast()
	}
}

// Lock acquires the lock for writing, blocking while any reader or
// another writer is active. Waiting here blocks new readers from
// entering.
func (l *Lock) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cv := l.cond()
	l.waitingWriters++
	for l.activeReaders > 0 || l.writerActive {
		cv.Wait()
	}
	l.waitingWriters--
	l.writerActive = true
}

// Unlock releases the write lock and wakes all waiters; whether a
// writer or the readers win the race is decided by the admission
// policy, not by wake order.
func (l *Lock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.writerActive {
		panic("rwlock: Unlock of unlocked Lock")
	}
	l.writerActive = false
	l.cond().Broadcast()
}
