package lightly

import (
	"context"
	"iter"
	"sync/atomic"
	"time"

	"github.com/pandelume/go-lightly/internal/queue"
)

// A TimeoutChannel is a one-shot channel that yields TIMEOUT after a fixed
// duration elapses and then closes itself. It accepts no produced values: Put
// always returns ErrUnsupported. It implements Channel.
//
// A TimeoutChannel is born preferred, so that a deadline coexisting with
// regular data sources in a Select call does not have to win a uniform race
// against them; see Select's preference tiering.
type TimeoutChannel struct {
	q         *queue.Buffered[any]
	preferred atomic.Bool
	timer     *time.Timer
}

// NewTimeoutChannel returns a new TimeoutChannel that fires TIMEOUT after d
// elapses. It returns ErrInvalidArgument if d is negative.
func NewTimeoutChannel(d time.Duration) (*TimeoutChannel, error) {
	if d < 0 {
		return nil, ErrInvalidArgument
	}
	c := &TimeoutChannel{q: queue.NewBuffered[any](1)}
	c.preferred.Store(true)
	c.timer = time.AfterFunc(d, c.fire)
	return c, nil
}

// fire is the background callback armed by NewTimeoutChannel, analogous to
// the teacher's runTick arming a time.Timer and reacting to its C channel: it
// injects TIMEOUT and then closes the channel.
func (c *TimeoutChannel) fire() {
	// bypass the public Put, which always rejects values on this kind.
	c.q.Put(context.Background(), TIMEOUT)
	c.q.Close()
}

// Put always returns ErrUnsupported: a TimeoutChannel accepts no produced
// values, only the TIMEOUT sentinel it injects itself.
func (c *TimeoutChannel) Put(ctx context.Context, v any) error { return ErrUnsupported }

func (c *TimeoutChannel) Take(ctx context.Context) (any, bool) { return c.q.Take(ctx) }

func (c *TimeoutChannel) Poll() (any, bool) { return c.q.Poll() }

func (c *TimeoutChannel) Peek() (any, bool) { return c.q.Peek() }

func (c *TimeoutChannel) Size() int { return c.q.Size() }

// Clear always returns ErrUnsupported: the single TIMEOUT value, once fired,
// is not discardable ahead of being observed.
func (c *TimeoutChannel) Clear() error { return ErrUnsupported }

// Close marks the channel closed and stops the pending timer if it has not
// yet fired; TIMEOUT will not be delivered if Close races ahead of the timer.
func (c *TimeoutChannel) Close() error {
	c.timer.Stop()
	c.q.Close()
	return nil
}

func (c *TimeoutChannel) Closed() bool { return c.q.Closed() }

func (c *TimeoutChannel) Preferred() bool { return c.preferred.Load() }

func (c *TimeoutChannel) Prefer() { c.preferred.Store(true) }

func (c *TimeoutChannel) Unprefer() { c.preferred.Store(false) }

func (c *TimeoutChannel) Snapshot() []any { return c.q.Snapshot() }

func (c *TimeoutChannel) Drain() []any { return c.q.Drain() }

func (c *TimeoutChannel) LazyDrain() iter.Seq[any] {
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

func (c *TimeoutChannel) Kind() Kind { return KindTimeout }

func (c *TimeoutChannel) String() string {
	return formatChannel(c.Closed(), c.Snapshot())
}
