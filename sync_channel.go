package lightly

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/pandelume/go-lightly/internal/queue"
)

// A SyncChannel is a rendezvous channel: Put blocks until a concurrent Take
// (or a Poll that wins the race) accepts the value directly, with no
// intermediate buffering. It implements Channel.
type SyncChannel struct {
	q         *queue.Handoff[any]
	preferred atomic.Bool
}

// NewSyncChannel returns a new, open SyncChannel.
func NewSyncChannel() *SyncChannel {
	return &SyncChannel{q: queue.NewHandoff[any]()}
}

func (c *SyncChannel) Put(ctx context.Context, v any) error {
	if err := c.q.Put(ctx, v); err != nil {
		if err == queue.ErrClosed {
			return ErrClosed
		}
		return err
	}
	return nil
}

func (c *SyncChannel) Take(ctx context.Context) (any, bool) { return c.q.Take(ctx) }

func (c *SyncChannel) Poll() (any, bool) { return c.q.Poll() }

// Peek on a SyncChannel always reports not-ready: there is no buffer to
// observe outside of an in-progress rendezvous with a consumer, which is
// exactly the documented choice for spec.md's Sync-peek open question.
func (c *SyncChannel) Peek() (any, bool) { return c.q.Peek() }

func (c *SyncChannel) Size() int { return c.q.Size() }

// Clear is a no-op on a SyncChannel: there is nothing buffered to discard.
func (c *SyncChannel) Clear() error { return nil }

func (c *SyncChannel) Close() error {
	c.q.Close()
	return nil
}

func (c *SyncChannel) Closed() bool { return c.q.Closed() }

func (c *SyncChannel) Preferred() bool { return c.preferred.Load() }

func (c *SyncChannel) Prefer() { c.preferred.Store(true) }

func (c *SyncChannel) Unprefer() { c.preferred.Store(false) }

// Snapshot always returns nil: a SyncChannel has nothing buffered to copy.
func (c *SyncChannel) Snapshot() []any { return nil }

// Drain always returns nil: a SyncChannel has nothing buffered to remove.
func (c *SyncChannel) Drain() []any { return nil }

func (c *SyncChannel) LazyDrain() iter.Seq[any] {
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

func (c *SyncChannel) Kind() Kind { return KindSync }

func (c *SyncChannel) String() string {
	return formatChannel(c.Closed(), c.Snapshot())
}
