package queue

import (
	"context"
	"sync"
)

// A Handoff is a synchronous rendezvous: a Put blocks until a concurrent
// Take directly receives the value, with no intermediate buffering. It is
// backed by a native unbuffered channel, which already is the handoff
// primitive the host runtime provides: an unbuffered chan send only
// completes once a receiver is ready to take the value in the same instant.
type Handoff[T any] struct {
	ch       chan T
	closed   chan struct{}
	closeOne sync.Once
}

// NewHandoff returns a new, open Handoff.
func NewHandoff[T any]() *Handoff[T] {
	return &Handoff[T]{
		ch:     make(chan T),
		closed: make(chan struct{}),
	}
}

// Put blocks until a concurrent Take accepts v, ctx is done, or the Handoff
// is closed. A Put that starts after Close has returned always fails with
// ErrClosed. A put that races a concurrent Close may either succeed (a Take
// received the value) or fail with ErrClosed; both outcomes are acceptable.
func (h *Handoff[T]) Put(ctx context.Context, v T) error {
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}
	select {
	case h.ch <- v:
		return nil
	case <-h.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Take blocks until a concurrent Put delivers a value, ctx is done, or the
// Handoff is closed and empty. It reports false in the latter two cases.
func (h *Handoff[T]) Take(ctx context.Context) (T, bool) {
	select {
	case v := <-h.ch:
		return v, true
	default:
	}
	select {
	case v := <-h.ch:
		return v, true
	case <-h.closed:
		// A put may have become ready concurrently with the close; give it
		// one more non-blocking chance before giving up.
		select {
		case v := <-h.ch:
			return v, true
		default:
		}
		var zero T
		return zero, false
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// Poll returns a value if a producer is ready to hand one off at this
// instant, without blocking.
func (h *Handoff[T]) Poll() (T, bool) {
	select {
	case v := <-h.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Peek always reports not-ready: a Handoff buffers nothing, so the only way
// to observe a pending value is to accept it via Take or Poll. Rendezvous
// channels are genuine handoff points, not a one-slot buffer, so peeking
// without consuming is not meaningful.
func (h *Handoff[T]) Peek() (T, bool) {
	var zero T
	return zero, false
}

// Size always reports 0: a Handoff holds no value outside of an in-progress
// rendezvous.
func (h *Handoff[T]) Size() int { return 0 }

// Close marks the Handoff closed. It is idempotent.
func (h *Handoff[T]) Close() {
	h.closeOne.Do(func() { close(h.closed) })
}

// Closed reports whether the Handoff has been closed.
func (h *Handoff[T]) Closed() bool {
	select {
	case <-h.closed:
		return true
	default:
		return false
	}
}
