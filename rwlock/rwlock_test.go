package rwlock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Andrej220/go-utils/agepool/rwlock"
)

func TestWriterExclusion(t *testing.T) {
	var l rwlock.Lock
	var counter int64 // intentionally unsynchronized; the lock is the synchronization

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != 8000 {
		t.Fatalf("counter = %d; want 8000", counter)
	}
}

func TestReadersShareAccess(t *testing.T) {
	var l rwlock.Lock
	var inside atomic.Int32
	both := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.RLock()
			defer l.RUnlock()
			if inside.Add(1) == 2 {
				close(both)
			}
			<-both // hold until both readers are in simultaneously
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("two readers could not hold the lock concurrently")
	}
}

func TestWriterBlocksReaders(t *testing.T) {
	var l rwlock.Lock
	l.Lock()

	acquired := make(chan struct{})
	go func() {
		l.RLock()
		close(acquired)
		l.RUnlock()
	}()

	select {
	case <-acquired:
		t.Fatal("reader entered while writer active")
	case <-time.After(50 * time.Millisecond):
	}

	l.Unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("reader not admitted after writer left")
	}
}

func TestWaitingWriterBlocksNewReaders(t *testing.T) {
	var l rwlock.Lock

	l.RLock() // first reader in

	writerIn := make(chan struct{})
	go func() {
		l.Lock() // queued behind the reader
		close(writerIn)
		l.Unlock()
	}()

	// Give the writer time to register as waiting, then try a second
	// reader: it must queue behind the writer.
	time.Sleep(20 * time.Millisecond)
	readerIn := make(chan struct{})
	go func() {
		l.RLock()
		close(readerIn)
		l.RUnlock()
	}()

	select {
	case <-readerIn:
		t.Fatal("new reader overtook a waiting writer")
	case <-time.After(50 * time.Millisecond):
	}

	l.RUnlock() // last reader out: the writer goes first
	select {
	case <-writerIn:
	case <-time.After(time.Second):
		t.Fatal("writer starved after readers left")
	}
	select {
	case <-readerIn:
	case <-time.After(time.Second):
		t.Fatal("reader not admitted after the writer finished")
	}
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Unlock of unlocked Lock")
		}
	}()
	var l rwlock.Lock
	l.Unlock()
}
