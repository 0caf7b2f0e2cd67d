// Package rendezvous implements the per-worker synchronization cell shared by
// a controller and exactly one worker goroutine.
//
// A cell holds a tri-state Status guarded by a mutex and a condition
// variable. Both parties mutate the status under the lock and broadcast on
// every change. Controller calls are synchronous: they only return once the
// worker has reacted, so the controller never observes a worker mid-step.
//
// State machine:
//
//	Ready --Submit--> Running --Suspend--> Blocked --Release--> Running --Finish--> Ready
//
// No lock is held while a worker is parked: Suspend waits on the condition
// variable, which releases the mutex until the controller calls Release.
package rendezvous

import (
	"sync"

	"github.com/kolkov/interleave/internal/sched/callsite"
)

// Cell is the rendezvous point between a controller and one worker.
//
// The zero value is not usable; create cells with New.
type Cell struct {
	mu       sync.Mutex
	cond     sync.Cond
	status   Status
	site     uint64
	observer func(Transition)
}

// New returns a Ready cell. observer, if non-nil, is called with the lock
// held for every status change and must not block or call back into the cell.
func New(observer func(Transition)) *Cell {
	c := &Cell{status: Ready, observer: observer}
	c.cond.L = &c.mu
	return c
}

// require panics with a ProtocolError unless the cell is in want.
// Caller holds c.mu.
func (c *Cell) require(op string, want Status) {
	if c.status != want {
		panic(&ProtocolError{Op: op, Want: want, Got: c.status})
	}
}

// set moves the cell to a new status. Caller holds c.mu.
func (c *Cell) set(to Status, site uint64) {
	if !Legal(c.status, to) {
		panic(&ProtocolError{Op: "transition to " + to.String(), Want: to, Got: c.status})
	}
	if c.observer != nil {
		c.observer(Transition{From: c.status, To: to, Site: site})
	}
	c.status = to
}

// Status returns the current status.
func (c *Cell) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Site returns the callsite hash where the worker is parked, or 0 when it
// is not Blocked.
func (c *Cell) Site() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != Blocked {
		return 0
	}
	return c.site
}

// Submit is the controller half of handing over a unit of work: it moves a
// Ready cell to Running. The work itself travels over the worker's channel;
// follow with Await.
func (c *Cell) Submit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.require("submit", Ready)
	c.set(Running, 0)
}

// Await blocks until the worker leaves Running and returns the status it
// reached: Blocked if it parked at a suspension point, Ready if the unit of
// work completed.
func (c *Cell) Await() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.status == Running {
		c.cond.Wait()
	}
	return c.status
}

// Release resumes a Blocked worker and waits for its next status.
func (c *Cell) Release() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.require("release", Blocked)
	c.set(Running, 0)
	c.cond.Broadcast()
	for c.status == Running {
		c.cond.Wait()
	}
	return c.status
}

// Begin is called by the worker when it picks up a unit of work.
func (c *Cell) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.require("begin", Running)
}

// Suspend parks the calling worker until the controller releases it.
//
// It must be called from the worker goroutine that owns the cell while the
// cell is Running. Every instrumented operation funnels into this method.
func (c *Cell) Suspend() {
	site := callsite.Capture(1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.require("suspend", Running)
	c.site = site
	c.set(Blocked, site)
	c.cond.Broadcast()
	for c.status == Blocked {
		c.cond.Wait()
	}
	c.require("resume", Running)
}

// Finish is called by the worker once a unit of work returns.
func (c *Cell) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.require("finish", Running)
	c.site = 0
	c.set(Ready, 0)
	c.cond.Broadcast()
}
