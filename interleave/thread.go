package interleave

import (
	"fmt"

	"github.com/kolkov/interleave/internal/sched/callsite"
	"github.com/kolkov/interleave/internal/sched/registry"
	"github.com/kolkov/interleave/internal/sched/rendezvous"
)

// Option configures a Thread.
type Option func(*options)

type options struct {
	name     string
	observer func(Transition)
}

// WithName sets the name used in protocol panics and String.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver registers fn to be called for every status change of the
// worker. fn runs with the cell locked and must not block or call back into
// the Thread.
func WithObserver(fn func(Transition)) Option {
	return func(o *options) { o.observer = fn }
}

// Thread is the controller-side handle of one worker goroutine operating on
// state of type S.
//
// A Thread must be used from a single driver goroutine. Always Close it:
// the worker goroutine runs until then.
type Thread[S any] struct {
	name    string
	cell    *rendezvous.Cell
	work    chan func(S)
	done    chan struct{}
	blocked bool
	closed  bool
}

// Spawn starts a worker goroutine that will run units of work against state.
func Spawn[S any](state S, opts ...Option) *Thread[S] {
	o := options{name: "worker"}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Thread[S]{
		name: o.name,
		cell: rendezvous.New(o.observer),
		work: make(chan func(S)),
		done: make(chan struct{}),
	}
	go t.loop(state)
	return t
}

// loop is the worker goroutine body.
func (t *Thread[S]) loop(state S) {
	defer close(t.done)

	registry.Bind(t.cell)
	defer registry.Unbind()

	for fn := range t.work {
		t.cell.Begin()
		fn(state)
		t.cell.Finish()
	}
}

// Act runs fn on the worker and waits until the worker either parks at a
// suspension point or finishes fn. The thread must be idle.
func (t *Thread[S]) Act(fn func(S)) {
	if t.closed {
		panic(&ProtocolError{Op: t.name + ": act after close", Want: Ready, Got: t.cell.Status()})
	}
	if fn == nil {
		panic(fmt.Sprintf("interleave: %s: Act with nil work", t.name))
	}
	t.cell.Submit()
	t.work <- fn
	t.blocked = t.cell.Await() == Blocked
}

// Unblock releases a parked worker and waits until it parks again or
// finishes its unit of work. The thread must be blocked.
func (t *Thread[S]) Unblock() {
	t.blocked = t.cell.Release() == Blocked
}

// IsBlocked reports whether the worker was parked at a suspension point
// when the last Act or Unblock returned.
func (t *Thread[S]) IsBlocked() bool {
	return t.blocked
}

// Status returns the worker's current status.
func (t *Thread[S]) Status() Status {
	return t.cell.Status()
}

// Site describes the suspension point the worker is parked at, or "" when
// it is not blocked.
func (t *Thread[S]) Site() string {
	hash := t.cell.Site()
	if hash == 0 {
		return ""
	}
	return callsite.Lookup(hash).Where()
}

// Close drains the worker and joins it.
//
// A blocked worker is released repeatedly until its unit of work completes;
// only then is the work channel closed. Closing first would leave the
// worker parked forever and the join would never return. Close is
// idempotent.
func (t *Thread[S]) Close() {
	if t.closed {
		return
	}
	for t.blocked {
		t.Unblock()
	}
	t.closed = true
	close(t.work)
	<-t.done
}

func (t *Thread[S]) String() string {
	return fmt.Sprintf("%s(%s)", t.name, t.cell.Status())
}
