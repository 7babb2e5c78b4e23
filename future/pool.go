// Package future provides a request/response worker pool: each
// submission returns a typed channel that will carry exactly one
// Result once the request has been served.
//
// The result channel is created by the pool, buffered, and written
// exactly once, so a caller that abandons it leaks nothing and a
// worker never blocks on delivery.
package future

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	lg "github.com/Andrej220/go-utils/zlog"
)

var (
	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("future: pool closed")

	// ErrNilFunc is returned when a request function is nil.
	ErrNilFunc = errors.New("future: request func is nil")
)

// RequestFunc serves one request: it receives the submission context
// and payload and produces a value or an error.
type RequestFunc[T, R any] func(context.Context, T) (R, error)

// Result carries the outcome of one request.
type Result[R any] struct {
	Value R
	Err   error
}

type request[T, R any] struct {
	ctx     context.Context
	payload T
	fn      RequestFunc[T, R]
	res     chan Result[R] // buffered, written exactly once
}

// Pool is a fixed-size request/response worker pool.
//
// Unlike the aging pool, Shutdown drains: requests accepted before
// shutdown are still served, so every channel handed out by Submit
// eventually receives its Result.
type Pool[T, R any] struct {
	requests chan request[T, R]
	wg       sync.WaitGroup
	stopOnce sync.Once
	closed   chan struct{} // signals no more submissions
}

// NewPool starts workers goroutines serving requests. A non-positive
// count defaults to one worker per available CPU.
func NewPool[T, R any](workers int) *Pool[T, R] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool[T, R]{
		requests: make(chan request[T, R], workers*2),
		closed:   make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit hands a request to the pool and returns the channel its
// Result will arrive on. The channel is buffered; the caller may
// receive from it whenever convenient, or never.
func (p *Pool[T, R]) Submit(ctx context.Context, payload T, fn RequestFunc[T, R]) (<-chan Result[R], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req := request[T, R]{
		ctx:     ctx,
		payload: payload,
		fn:      fn,
		res:     make(chan Result[R], 1),
	}
	select {
	case <-p.closed:
		return nil, ErrPoolClosed
	default:
	}
	select {
	case p.requests <- req:
		return req.res, nil
	case <-p.closed:
		return nil, ErrPoolClosed
	}
}

// Shutdown stops accepting requests, serves everything already
// accepted, and waits for the workers to exit. It returns the
// context's error if ctx expires first; the pool keeps draining in
// the background. Idempotent.
func (p *Pool[T, R]) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.closed)   // reject new requests
		close(p.requests) // let workers drain
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
func (p *Pool[T, R]) Stop() { _ = p.Shutdown(context.Background()) }

func (p *Pool[T, R]) worker() {
	defer p.wg.Done()
	for req := range p.requests {
		p.serve(req)
	}
}

// serve runs one request and delivers its result. A panic inside the
// request function is captured into the Result rather than killing
// the worker.
func (p *Pool[T, R]) serve(req request[T, R]) {
	defer func() {
		if r := recover(); r != nil {
			lg.FromContext(req.ctx).Error("request panicked", lg.Any("panic", r))
			var zero R
			req.res <- Result[R]{Value: zero, Err: fmt.Errorf("future: request panicked: %v", r)}
		}
	}()

	if err := req.ctx.Err(); err != nil {
		var zero R
		req.res <- Result[R]{Value: zero, Err: err}
		return
	}
	v, err := req.fn(req.ctx, req.payload)
	req.res <- Result[R]{Value: v, Err: err}
}
