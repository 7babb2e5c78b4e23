package agepool

import (
	"time"
)

// RetryPolicy describes how many times and how often a task should be retried.
// Zero values are treated as "use pool defaults".
type RetryPolicy struct {
	// Attempts is the maximum number of tries for a task.
	Attempts int

	// Initial is the first backoff duration.
	Initial time.Duration

	// Max is the cap for backoff duration.
	Max time.Duration
}

// GetDefaultRP returns a pointer to a default retry policy used by the pool.
// Useful in tests or when constructing a pool with the same defaults.
func GetDefaultRP() *RetryPolicy {
	rp := RetryPolicy{
		Attempts: defaultAttempts,
		Initial:  defaultInitialRetry,
		Max:      defaultMaxRetry,
	}
	return &rp
}

// merge overlays non-zero fields of the per-task override onto the
// pool default.
func (rp RetryPolicy) merge(override *RetryPolicy) RetryPolicy {
	if override == nil {
		return rp
	}
	if override.Attempts > 0 {
		rp.Attempts = override.Attempts
	}
	if override.Initial > 0 {
		rp.Initial = override.Initial
	}
	if override.Max > 0 {
		rp.Max = override.Max
	}
	return rp
}
