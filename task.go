package lightly

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// A Task is a handle to a goroutine started by Spawn, SpawnDetachedTask, or
// SpawnLogged: a cancellation signal and a way to observe completion. It
// carries no return value of its own; a body that needs to report a result
// should do so through a channel it closes over.
type Task struct {
	id     taskID
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel requests that the task's body observe ctx.Done() at its next
// blocking point. Cancellation is asynchronous: Cancel returns immediately,
// before the body necessarily stops.
func (t *Task) Cancel() { t.cancel() }

// Done returns a channel that is closed once the task's body has returned.
func (t *Task) Done() <-chan struct{} { return t.done }

// String renders the task's opaque diagnostic identifier.
func (t *Task) String() string { return string(t.id) }

// An Inventory is a thread-safe collection of live Task handles, appended to
// on Spawn and iterated/cleared on StopAll. This is the explicit,
// embeddable form of the process-wide registry spec.md §9's Open Question
// offers as a multi-user alternative to global state: construct one with
// &Inventory{} and pass it to the *WithInventory variants below to avoid
// sharing the package-level default.
type Inventory struct {
	mu    sync.Mutex
	tasks []*Task
}

// Append adds t to the inventory.
func (inv *Inventory) Append(t *Task) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.tasks = append(inv.tasks, t)
}

// Len reports the number of tasks currently tracked.
func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.tasks)
}

// StopAll signals cancellation to every tracked task and clears the
// inventory. It returns once every signal has been sent, not once every
// task has terminated.
func (inv *Inventory) StopAll() {
	inv.mu.Lock()
	tasks := inv.tasks
	inv.tasks = nil
	inv.mu.Unlock()
	for _, t := range tasks {
		t.Cancel()
	}
}

// defaultInventory backs the package-level Spawn, SpawnLogged, StopAll, and
// Shutdown functions, so casual callers get the shared-registry behavior
// spec.md §4.3 describes without constructing anything themselves.
var defaultInventory = &Inventory{}

// Spawn starts body running in a new goroutine and records its handle in
// the package-level default Inventory. The Go runtime is already the
// "shared worker pool" spec.md §5 describes: any number of goroutines may be
// live at once, scheduled onto any OS thread, so Spawn interposes no bounded
// pool of its own, which would risk deadlock for nested Spawn/WithTimeout
// calls.
func Spawn(ctx context.Context, body func(context.Context)) *Task {
	return SpawnWithInventory(defaultInventory, ctx, body)
}

// SpawnWithInventory is Spawn against an explicit Inventory instead of the
// package-level default.
func SpawnWithInventory(inv *Inventory, ctx context.Context, body func(context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{id: randTaskID(), cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		body(ctx)
	}()
	inv.Append(t)
	return t
}

// SpawnDetached starts body running in a new goroutine with no tracked
// handle: it is not added to any Inventory and is unaffected by StopAll.
func SpawnDetached(ctx context.Context, body func(context.Context)) {
	go body(ctx)
}

// SpawnLogged is Spawn, but installs an implicit error boundary around
// body: a panic is recovered and logged via log/slog, and a
// context.Canceled panic or early return is treated as the expected
// outcome of a cancelled long-running loop and swallowed without logging.
// This is the one site in the library that catches anything on body's
// behalf; errors returned or panicked from Selectf handlers are never
// caught this way.
func SpawnLogged(ctx context.Context, body func(context.Context)) *Task {
	return SpawnLoggedWithInventory(defaultInventory, ctx, body)
}

// SpawnLoggedWithInventory is SpawnLogged against an explicit Inventory.
func SpawnLoggedWithInventory(inv *Inventory, ctx context.Context, body func(context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{id: randTaskID(), cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok && err == context.Canceled {
					return
				}
				slog.Error("lightly: task panicked", "task", t.id, "panic", fmt.Sprint(r))
			}
		}()
		body(ctx)
	}()
	inv.Append(t)
	return t
}

// StopAll signals cancellation to every task in the package-level default
// Inventory and clears it.
func StopAll() { defaultInventory.StopAll() }

// Shutdown calls StopAll and quiesces the package's shared infrastructure.
// lightly interposes no executor pool or other shared resource beyond the
// default Inventory, so Shutdown is currently equivalent to StopAll; it is
// exported separately so that callers have a stable name to call even if
// shared infrastructure is added later.
func Shutdown() { StopAll() }

// WithTimeout runs body as a task, waiting up to d for it to return a
// result. If d elapses first, it signals cancellation to the task and
// returns (nil, false) without waiting further for the task to actually
// stop.
func WithTimeout(ctx context.Context, d time.Duration, body func(context.Context) any) (any, bool) {
	if d < 0 {
		return nil, false
	}
	resultCh := make(chan any, 1)
	t := SpawnDetachedTask(ctx, func(ctx context.Context) {
		resultCh <- body(ctx)
	})
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case v := <-resultCh:
		return v, true
	case <-timer.C:
		t.Cancel()
		return nil, false
	case <-ctx.Done():
		t.Cancel()
		return nil, false
	}
}

// SpawnDetachedTask is like SpawnDetached, but returns a Task handle for
// callers (such as WithTimeout) that need to cancel the body without
// tracking it in any Inventory.
func SpawnDetachedTask(ctx context.Context, body func(context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{id: randTaskID(), cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		body(ctx)
	}()
	return t
}
