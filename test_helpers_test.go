package agepool_test

import (
	"runtime"
	"testing"
	"time"

	ap "github.com/Andrej220/go-utils/agepool"
)

func mustSubmit[T any](t *testing.T, p *ap.Pool[T], priority int, label string, task ap.Task[T]) {
	t.Helper()
	if err := p.Submit(priority, label, task); err != nil {
		t.Fatalf("submit %s: %v", label, err)
	}
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		runtime.Gosched()
	}
	t.Fatal("condition not satisfied before timeout")
}

func waitUntilB(b *testing.B, timeout time.Duration, cond func() bool) {
	b.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		runtime.Gosched()
	}
	b.Fatal("condition not satisfied before timeout")
}
