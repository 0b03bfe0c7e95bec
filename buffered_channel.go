package lightly

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/pandelume/go-lightly/internal/queue"
)

// A BufferedChannel is a fixed-capacity FIFO channel: Put blocks only when
// the buffer is full, and Take blocks only when it is empty. It implements
// Channel.
type BufferedChannel struct {
	q         *queue.Buffered[any]
	preferred atomic.Bool
}

// NewBufferedChannel returns a new, open BufferedChannel with the given
// capacity. It returns ErrInvalidArgument if capacity is not positive.
func NewBufferedChannel(capacity int) (*BufferedChannel, error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument
	}
	return &BufferedChannel{q: queue.NewBuffered[any](capacity)}, nil
}

func (c *BufferedChannel) Put(ctx context.Context, v any) error {
	if err := c.q.Put(ctx, v); err != nil {
		if err == queue.ErrClosed {
			return ErrClosed
		}
		return err
	}
	return nil
}

func (c *BufferedChannel) Take(ctx context.Context) (any, bool) { return c.q.Take(ctx) }

func (c *BufferedChannel) Poll() (any, bool) { return c.q.Poll() }

func (c *BufferedChannel) Peek() (any, bool) { return c.q.Peek() }

func (c *BufferedChannel) Size() int { return c.q.Size() }

func (c *BufferedChannel) Clear() error {
	c.q.Clear()
	return nil
}

func (c *BufferedChannel) Close() error {
	c.q.Close()
	return nil
}

func (c *BufferedChannel) Closed() bool { return c.q.Closed() }

func (c *BufferedChannel) Preferred() bool { return c.preferred.Load() }

func (c *BufferedChannel) Prefer() { c.preferred.Store(true) }

func (c *BufferedChannel) Unprefer() { c.preferred.Store(false) }

func (c *BufferedChannel) Snapshot() []any { return c.q.Snapshot() }

func (c *BufferedChannel) Drain() []any { return c.q.Drain() }

func (c *BufferedChannel) LazyDrain() iter.Seq[any] {
	return func(yield func(any) bool) {
		for {
			v, ok := c.Poll()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

func (c *BufferedChannel) Kind() Kind { return KindBuffered }

func (c *BufferedChannel) String() string {
	return formatChannel(c.Closed(), c.Snapshot())
}
