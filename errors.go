package lightly

import "errors"

var (
	// ErrClosed is returned by Put when the channel has already been
	// closed.
	ErrClosed = errors.New("lightly: channel is closed")

	// ErrUnsupported is returned by Put and Clear on a TimeoutChannel,
	// which accepts no produced values and cannot be cleared.
	ErrUnsupported = errors.New("lightly: operation not supported on this channel kind")

	// ErrInvalidArgument is returned synchronously for a non-positive
	// buffer capacity, a negative timeout, or a malformed Selectf clause
	// list.
	ErrInvalidArgument = errors.New("lightly: invalid argument")
)
