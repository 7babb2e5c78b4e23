package agepool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
)

// Pool is a fixed-size worker pool whose ready queue is a max-heap
// ordered by effective task priority. A background monitor raises the
// effective priority of waiting tasks over time (aging), so low
// priority work cannot starve under a sustained flood of high
// priority submissions.
//
// All scheduling state — the heap store and the stop latch — is
// guarded by a single mutex; workers park on a condition variable
// while the store is empty. Task execution happens with the lock
// released, so a slow task never blocks submission, aging, or other
// workers.
type Pool[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   *store[T]
	stopped bool // one-way latch, guarded by mu

	opts Options

	wg       sync.WaitGroup
	stopCh   chan struct{} // closed once, wakes the aging monitor
	stopOnce sync.Once

	activeWorkers atomic.Int32
	metrics       MetricsPolicy

	// OnTaskError, if set, is called when a task exhausts its retry
	// attempts or panics. It runs on the worker goroutine and must
	// be safe for concurrent use.
	OnTaskError func(label string, err error)
}

// New creates a pool with opts.Workers persistent workers and starts
// the aging monitor. A zero worker count defaults to one worker per
// available CPU; a negative count is rejected with ErrInvalidWorkers
// so a pool that can never run anything is impossible to construct.
func New[T any](opts Options) (*Pool[T], error) {
	if opts.Workers < 0 {
		return nil, ErrInvalidWorkers
	}
	opts.FillDefaults()

	p := &Pool[T]{
		queue:   newStore[T](opts.BoostInterval, opts.BoostAmount),
		opts:    opts,
		stopCh:  make(chan struct{}),
		metrics: opts.Metrics,
	}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.wg.Add(1)
	go p.monitor()
	return p, nil
}

// Submit inserts a task with the given priority and label and wakes
// one idle worker. Higher priority values run first; the effective
// priority only grows from here as the task waits.
//
// Submit never blocks: the store is unbounded. After Shutdown it
// returns ErrPoolClosed; a task with a nil Fn is rejected with
// ErrNilFunc.
func (p *Pool[T]) Submit(priority int, label string, task Task[T]) error {
	if task.Fn == nil {
		return ErrNilFunc
	}
	if task.Ctx == nil {
		task.Ctx = context.Background()
	}
	it := &item[T]{
		task:     task,
		label:    label,
		origPrio: priority,
		curPrio:  priority,
		queuedAt: time.Now(),
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.queue.insert(it)
	p.mu.Unlock()

	p.metrics.IncQueued()
	p.cond.Signal()
	lg.FromContext(task.Ctx).Info("Task submitted",
		lg.String("task", label),
		lg.Int("priority", priority),
	)
	return nil
}

// Shutdown stops the pool: no new tasks are accepted, tasks still
// resident in the store are discarded without running, and in-flight
// tasks finish. It returns once every worker and the monitor have
// exited, or earlier with the context's error if ctx expires first
// (the pool keeps winding down in the background).
//
// Shutdown is idempotent; a second call only waits.
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.stopCh) // monitor exits without a final aging pass

		p.mu.Lock()
		p.stopped = true
		dropped := p.queue.drop()
		p.mu.Unlock()

		if dropped > 0 {
			p.metrics.AddDropped(int64(dropped))
			lg.FromContext(context.Background()).Warn("Pool shut down with resident tasks",
				lg.Int("dropped", dropped),
			)
		}
		p.cond.Broadcast()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop is a blocking Shutdown with no deadline.
func (p *Pool[T]) Stop() { _ = p.Shutdown(context.Background()) }

// worker extracts the highest-priority task and executes it, looping
// until shutdown. The wait predicate guards against spurious and lost
// wake-ups: a woken worker re-checks the store before doing anything.
func (p *Pool[T]) worker(id int) {
	defer p.wg.Done()

	if p.opts.PinWorkers {
		runtime.LockOSThread()
		if err := PinToCPU(id % runtime.NumCPU()); err != nil {
			lg.FromContext(context.Background()).Warn("worker pinning failed",
				lg.Int("worker", id),
				lg.Any("error", err),
			)
		}
	}

	for {
		p.mu.Lock()
		for p.queue.len() == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.queue.len() == 0 && p.stopped {
			p.mu.Unlock()
			return
		}
		it, _ := p.queue.extractMax()
		p.mu.Unlock()

		p.metrics.DecQueued()
		p.runTask(it)
	}
}

// runTask executes one extracted task outside the lock. A panic in
// the payload is contained to this iteration: the task is already out
// of the store, so no heap state can be corrupted, and the worker
// goes back to waiting.
func (p *Pool[T]) runTask(it *item[T]) {
	p.activeWorkers.Add(1)
	defer p.activeWorkers.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			lg.FromContext(it.task.Ctx).Error("task panicked",
				lg.String("task", it.label),
				lg.Any("panic", r),
			)
			p.reportTaskError(it.label, fmt.Errorf("agepool: task panicked: %v", r))
		}
		if it.task.Cleanup != nil {
			it.task.Cleanup()
		}
		p.metrics.IncExecuted()
	}()
	p.processTask(it)
}

func (p *Pool[T]) processTask(it *item[T]) {
	logger := lg.FromContext(it.task.Ctx).With(
		lg.String("task", it.label),
		lg.Int("priority", it.curPrio),
	)
	logger.Info("Worker processing task", lg.Int32("active_workers", p.activeWorkers.Load()))

	pol := p.opts.Retry.merge(it.task.Retry)
	bo := boff.New(pol.Initial, pol.Max, time.Now().UnixNano())

	for attempt := 1; attempt <= pol.Attempts; attempt++ {
		if err := it.task.Fn(it.task.Payload); err == nil {
			logger.Info("Worker finished", lg.Int32("active_workers", p.activeWorkers.Load()))
			return
		} else if attempt == pol.Attempts {
			logger.Error("Worker error", lg.Int("attempt", attempt), lg.Any("error", err))
			p.reportTaskError(it.label, err)
			return
		} else {
			delay := bo.Next()
			logger.Warn("task attempt failed; backing off",
				lg.Int("attempt", attempt),
				lg.String("sleep", delay.String()),
				lg.Any("error", err),
			)
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-it.task.Ctx.Done():
				if !timer.Stop() {
					<-timer.C // drain if timer already fired
				}
				logger.Info("Task canceled", lg.Any("reason", it.task.Ctx.Err()))
				return
			}
		}
	}
}

// ActiveWorkers returns the number of workers currently executing a task.
func (p *Pool[T]) ActiveWorkers() int32 { return p.activeWorkers.Load() }

// Resident returns the number of tasks waiting in the store.
func (p *Pool[T]) Resident() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.len()
}

// Workers returns the fixed size of the worker set.
func (p *Pool[T]) Workers() int { return p.opts.Workers }
