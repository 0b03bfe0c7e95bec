package lightly

import (
	"context"
	"testing"
	"time"

	"kr.dev/diff"
)

func TestSyncChannelRendezvous(t *testing.T) {
	c := NewSyncChannel()
	ctx := context.Background()

	putReturned := make(chan struct{})
	go func() {
		if err := c.Put(ctx, "a"); err != nil {
			t.Error(err)
		}
		close(putReturned)
	}()

	select {
	case <-putReturned:
		t.Fatal("Put on a SyncChannel returned before any Take")
	case <-time.After(20 * time.Millisecond):
	}

	got, ok := c.Take(ctx)
	diff.Test(t, t.Errorf, ok, true)
	diff.Test(t, t.Errorf, got, "a")

	select {
	case <-putReturned:
	case <-time.After(time.Second):
		t.Fatal("Put did not return after its value was taken")
	}
}

// TestSyncChannelFIFOOrder is scenario S1: a single producer sends "a" then
// "b"; a single consumer must observe them in that order.
func TestSyncChannelFIFOOrder(t *testing.T) {
	c := NewSyncChannel()
	ctx := context.Background()
	go func() {
		c.Put(ctx, "a")
		c.Put(ctx, "b")
	}()
	for _, want := range []string{"a", "b"} {
		got, ok := c.Take(ctx)
		diff.Test(t, t.Errorf, ok, true)
		diff.Test(t, t.Errorf, got, want)
	}
}

func TestSyncChannelSizeAlwaysZero(t *testing.T) {
	c := NewSyncChannel()
	if got := c.Size(); got != 0 {
		t.Errorf("Size() = %d, want 0", got)
	}
}

func TestSyncChannelCloseMonotonic(t *testing.T) {
	c := NewSyncChannel()
	c.Close()
	ctx := context.Background()
	if err := c.Put(ctx, 1); err != ErrClosed {
		t.Errorf("Put after Close = %v, want ErrClosed", err)
	}
	if _, ok := c.Take(ctx); ok {
		t.Error("Take on a closed, empty SyncChannel reported a value")
	}
	c.Close() // idempotent
}

func TestSyncChannelPreferFlags(t *testing.T) {
	c := NewSyncChannel()
	if c.Preferred() {
		t.Error("new SyncChannel is preferred; want false")
	}
	c.Prefer()
	if !c.Preferred() {
		t.Error("Prefer() did not set Preferred()")
	}
	c.Unprefer()
	if c.Preferred() {
		t.Error("Unprefer() did not clear Preferred()")
	}
}

func TestSyncChannelString(t *testing.T) {
	c := NewSyncChannel()
	if got := c.String(); got != "<=[ ] " {
		t.Errorf("String() = %q, want %q", got, "<=[ ] ")
	}
	c.Close()
	if got := c.String(); got != ":closed <=[ ] " {
		t.Errorf("String() = %q, want %q", got, ":closed <=[ ] ")
	}
}

func TestSyncChannelKind(t *testing.T) {
	c := NewSyncChannel()
	if c.Kind() != KindSync {
		t.Errorf("Kind() = %v, want KindSync", c.Kind())
	}
}
