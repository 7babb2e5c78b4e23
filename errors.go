package agepool

import "errors"

var (
	// ErrPoolClosed is returned by Submit after the pool has been
	// shut down.
	ErrPoolClosed = errors.New("agepool: pool closed")

	// ErrNilFunc is returned when a submitted Task has a nil Fn.
	ErrNilFunc = errors.New("agepool: task func is nil")

	// ErrInvalidWorkers is returned by New when Options.Workers is
	// negative. A zero value means "unspecified" and is replaced by
	// a hardware-derived default instead.
	ErrInvalidWorkers = errors.New("agepool: worker count must not be negative")
)

// reportTaskError reports a task that exhausted its retry attempts or
// panicked.
//
// Task errors do not stop pool execution and are reported via the
// configured handler. If no handler is registered, the error is
// silently ignored (it has already been logged).
func (p *Pool[T]) reportTaskError(label string, err error) {
	if p.OnTaskError != nil {
		p.OnTaskError(label, err)
	}
}
