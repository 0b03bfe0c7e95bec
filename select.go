package lightly

import (
	"context"
	"time"

	"github.com/pandelume/go-lightly/internal/roundrobinrandom"
)

// Backoff schedule for the blocking wait discipline: an initial sleep,
// increasing by a fixed step after every empty readiness scan, up to a
// ceiling. This is a bounded backoff poll loop, growing linearly rather than
// exponentially, of the kind the spec
// permits (and does not mandate) as the implementation of its observable
// "eventually ready, or timeout" contract.
const (
	backoffInitial = 200 * time.Microsecond
	backoffStep    = 25 * time.Microsecond
	backoffCeiling = 1500 * time.Microsecond
)

// selectOnce performs a single readiness scan and choice over chans, per
// spec.md §4.2.1: partition into preferred/non-preferred tiers by the
// instantaneous Preferred() flag, pick uniformly at random among the ready
// channels of the highest non-empty tier, and attempt Poll on it. A lost
// race (Peek reported ready but Poll came up empty) is reported back to the
// caller as ok=false so the caller can retry the whole scan, per step 4.
func selectOnce(chans []Channel) (v any, ch Channel, ok bool) {
	var preferred, rest []Channel
	for _, c := range chans {
		if c.Preferred() {
			preferred = append(preferred, c)
		} else {
			rest = append(rest, c)
		}
	}
	if c := pickReady(preferred); c != nil {
		if v, ok := c.Poll(); ok {
			return v, c, true
		}
		return nil, nil, false
	}
	if c := pickReady(rest); c != nil {
		if v, ok := c.Poll(); ok {
			return v, c, true
		}
		return nil, nil, false
	}
	return nil, nil, false
}

// pickReady returns one channel chosen uniformly at random from the ready
// subset of tier (those for which Peek reports a value), or nil if none is
// ready. The random choice is built the same way the teacher's
// roundrobinrandom.Order picks a uniformly random gossip target: insert
// every ready channel at an independent random position, then take the
// first draw.
func pickReady(tier []Channel) Channel {
	var order roundrobinrandom.Order[Channel]
	for _, c := range tier {
		if _, ok := c.Peek(); ok {
			order.Add(c)
		}
	}
	return order.Next()
}

// Select blocks until some channel in chans is ready, chosen per the
// preference/uniform-random discipline of §4.2.1, and returns the value
// received, the channel it came from, and true. It returns
// (nil, nil, false) if ctx is done before any selection succeeds.
func Select(ctx context.Context, chans ...Channel) (any, Channel, bool) {
	sleep := backoffInitial
	for {
		if v, c, ok := selectOnce(chans); ok {
			return v, c, true
		}
		timer := time.NewTimer(sleep)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, false
		}
		if sleep < backoffCeiling {
			sleep += backoffStep
			if sleep > backoffCeiling {
				sleep = backoffCeiling
			}
		}
	}
}

// SelectTimeout is Select bounded by d: it returns (nil, nil, false) if no
// channel becomes ready within d. A negative d is invalid.
func SelectTimeout(d time.Duration, chans ...Channel) (any, Channel, bool) {
	if d < 0 {
		return nil, nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return Select(ctx, chans...)
}

// SelectNowait performs a single readiness scan and choice, with no wait
// loop: it returns (nil, nil, false) if no channel was ready at that
// instant. Equivalent to SelectNowaitOr(nil, chans...) except for the
// reported ok.
func SelectNowait(chans ...Channel) (any, Channel, bool) {
	return selectOnce(chans)
}

// SelectNowaitOr is SelectNowait, but returns sentinel instead of reporting
// not-ok when no channel is ready.
func SelectNowaitOr(sentinel any, chans ...Channel) (any, Channel) {
	if v, c, ok := selectOnce(chans); ok {
		return v, c
	}
	return sentinel, nil
}

// A Clause pairs a channel with the handler Selectf invokes if that channel
// is chosen, or marks the default handler invoked when no channel is ready.
// Clauses are constructed with Case and Default, never directly.
type Clause struct {
	ch      Channel
	handler func(any) any
	isDef   bool
	def     func() any
}

// Case returns a Clause pairing ch with handler: if Selectf chooses ch,
// handler is invoked with the value received from it.
func Case(ch Channel, handler func(v any) any) Clause {
	return Clause{ch: ch, handler: handler}
}

// Default returns a Clause installing handler as Selectf's non-blocking
// fallback, invoked with no argument when no channel in the call is ready.
// At most one Default clause is meaningful in a single Selectf call; a
// later one overrides an earlier one, consistent with duplicate-channel
// handling.
func Default(handler func() any) Clause {
	return Clause{isDef: true, def: handler}
}

// Selectf reads one value from the channels named in clauses, as per
// SelectNowait if a Default clause is present (a non-blocking attempt) or
// Select otherwise (blocking), then invokes the handler paired with the
// chosen channel on the received value and returns its result. Duplicate
// channel clauses collapse to the last handler supplied for that channel,
// by iterating clauses in order into a map keyed by channel identity.
// It returns ErrInvalidArgument, before receiving anything, if a clause has
// a nil channel or a nil handler.
// Panics raised inside a handler are not recovered; they propagate to the
// caller of Selectf, per the library's policy of never catching
// user-domain errors from callbacks it invokes.
func Selectf(clauses ...Clause) (any, error) {
	handlers := make(map[Channel]func(any) any)
	var order []Channel
	var def func() any
	for _, cl := range clauses {
		if cl.isDef {
			if cl.def == nil {
				return nil, ErrInvalidArgument
			}
			def = cl.def
			continue
		}
		if cl.ch == nil || cl.handler == nil {
			return nil, ErrInvalidArgument
		}
		if _, seen := handlers[cl.ch]; !seen {
			order = append(order, cl.ch)
		}
		handlers[cl.ch] = cl.handler
	}
	chans := order

	if def != nil {
		v, ch, ok := SelectNowait(chans...)
		if !ok {
			return def(), nil
		}
		return handlers[ch](v), nil
	}

	v, ch, ok := Select(context.Background(), chans...)
	if !ok {
		return nil, ErrInvalidArgument
	}
	return handlers[ch](v), nil
}
