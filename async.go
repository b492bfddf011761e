package sketchpad

import (
	"context"
	"sync"
	"sync/atomic"
)

// async runs background work and hands its completions back to the owner
// goroutine. Completions are queued for Wait unless a dispatcher is set.
type async struct {
	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	dispatch    func(func())
	outstanding atomic.Int64

	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func (a *async) initAsync(dispatch func(func())) {
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.wake = make(chan struct{}, 1)
	a.dispatch = dispatch
	if a.dispatch == nil {
		a.dispatch = a.enqueue
	}
}

// spawn runs work on its own goroutine. The function work returns is the
// completion; it runs through the dispatcher and is dropped after Close.
func (a *async) spawn(work func(ctx context.Context) func()) {
	a.outstanding.Add(1)
	go func() {
		done := work(a.ctx)
		a.dispatch(func() {
			defer a.finish()
			if done == nil || a.closed.Load() {
				return
			}
			done()
		})
	}()
}

func (a *async) enqueue(f func()) {
	a.mu.Lock()
	a.queue = append(a.queue, f)
	a.mu.Unlock()
	a.notify()
}

func (a *async) finish() {
	a.outstanding.Add(-1)
	a.notify()
}

func (a *async) notify() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *async) shutdown() {
	if a.closed.CompareAndSwap(false, true) {
		a.cancel()
	}
}

// Wait runs queued completions on the calling goroutine until no background
// work is outstanding or ctx is done. With WithDispatcher it only waits.
//
// Wait must be called from the goroutine that owns the Sketchpad. After
// Close it drains what is left and returns ErrClosed.
func (s *Sketchpad) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		q := s.queue
		s.queue = nil
		s.mu.Unlock()
		for _, f := range q {
			f()
		}
		if len(q) > 0 {
			continue
		}
		if s.outstanding.Load() == 0 {
			if s.closed.Load() {
				return ErrClosed
			}
			return nil
		}
		select {
		case <-s.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
