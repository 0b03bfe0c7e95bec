package lightly

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// A Kind identifies which of the three channel variants a Channel is.
type Kind int

const (
	// KindSync identifies a SyncChannel: an unbuffered rendezvous.
	KindSync Kind = iota
	// KindBuffered identifies a BufferedChannel: a fixed-capacity FIFO.
	KindBuffered
	// KindTimeout identifies a TimeoutChannel: a one-shot timer channel.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindSync:
		return "sync"
	case KindBuffered:
		return "buffered"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// timeoutSentinel is the type of TIMEOUT. It carries no data; its only
// purpose is to be a value distinguishable, by identity, from anything a
// caller could legitimately put on a channel.
type timeoutSentinel struct{}

// TIMEOUT is the sentinel value a TimeoutChannel yields when its duration
// elapses. It is comparable: v == lightly.TIMEOUT identifies it.
var TIMEOUT any = timeoutSentinel{}

// A Channel is an ordered, multi-producer/multi-consumer conduit for values
// of any type, shared by every channel kind lightly provides (SyncChannel,
// BufferedChannel, TimeoutChannel) and by Select's heterogeneous channel
// sets. Put, Take, Poll, and Peek report absence or non-delivery the way the
// rest of Go does — a second boolean result — rather than through a
// separate wrapper value, so a legitimately transported nil is
// distinguishable from "nothing available".
type Channel interface {
	// Put delivers v, blocking as the channel kind requires. It returns
	// ErrClosed if the channel is closed, ErrUnsupported if this kind does
	// not accept Put, or ctx.Err() if ctx is done first.
	Put(ctx context.Context, v any) error

	// Take removes and returns the oldest value, blocking until one is
	// available, the channel is closed and empty, or ctx is done.
	Take(ctx context.Context) (any, bool)

	// Poll removes and returns the oldest value if one is immediately
	// available, without blocking.
	Poll() (any, bool)

	// Peek returns the oldest value without removing it, or reports false
	// if none is available. It never blocks.
	Peek() (any, bool)

	// Size reports the current number of buffered values. It is always 0
	// for a SyncChannel.
	Size() int

	// Clear discards all buffered values. It returns ErrUnsupported on a
	// TimeoutChannel.
	Clear() error

	// Close marks the channel closed. It is idempotent.
	Close() error

	// Closed reports whether Close has been called.
	Closed() bool

	// Preferred reports whether this channel is in Select's preferred
	// tier.
	Preferred() bool

	// Prefer moves this channel into Select's preferred tier.
	Prefer()

	// Unprefer moves this channel out of Select's preferred tier.
	Unprefer()

	// Snapshot returns a non-removing copy of the currently buffered
	// values, oldest first.
	Snapshot() []any

	// Drain atomically removes and returns all currently buffered values.
	Drain() []any

	// LazyDrain returns an iterator that repeatedly Polls until no value is
	// immediately available. It is race-permissive: a concurrent producer
	// may cause it to end early, or to yield values that arrive during
	// iteration.
	LazyDrain() iter.Seq[any]

	// Kind reports which channel variant this is.
	Kind() Kind

	fmt.Stringer
}

// formatChannel renders vs (typically the result of Snapshot) the way every
// channel kind's String method does: "<=[ v1 v2 … ] ", with a ":closed "
// prefix if closed. This is diagnostic only.
func formatChannel(closed bool, vs []any) string {
	var b strings.Builder
	if closed {
		b.WriteString(":closed ")
	}
	b.WriteString("<=[ ")
	for _, v := range vs {
		fmt.Fprintf(&b, "%v ", v)
	}
	b.WriteString("] ")
	return b.String()
}
