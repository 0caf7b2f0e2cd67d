// Copyright 2025 The interleave Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry maps controlled worker goroutines to their rendezvous
// cells.
//
// Suspension points are called from deep inside ordinary code that has no
// handle on the scheduler. They ask Current() whether the calling goroutine
// is a controlled worker, and if so which cell to park on. Each worker binds
// itself once when it starts and unbinds when it exits; no other goroutine
// ever writes its entry.
package registry

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kolkov/interleave/internal/sched/goid"
	"github.com/kolkov/interleave/internal/sched/rendezvous"
)

var (
	// cells maps goroutine id (int64) to *rendezvous.Cell.
	//
	// Keys are written once per worker lifetime and read on every
	// suspension point, the access pattern sync.Map is built for.
	cells sync.Map

	// bound counts live bindings. Uncontrolled code checks it first so the
	// goroutine id lookup is skipped entirely while no worker exists.
	bound atomic.Int64
)

// Bind registers c as the cell of the calling goroutine.
//
// It panics if the goroutine is already bound: a worker owns exactly one
// cell for its whole life.
func Bind(c *rendezvous.Cell) {
	if c == nil {
		panic("registry: Bind with nil cell")
	}
	id := goid.ID()
	if _, loaded := cells.LoadOrStore(id, c); loaded {
		panic(fmt.Sprintf("registry: goroutine %d is already bound to a cell", id))
	}
	bound.Add(1)
}

// Unbind removes the calling goroutine's registration. It is a no-op for
// goroutines that were never bound.
func Unbind() {
	if _, loaded := cells.LoadAndDelete(goid.ID()); loaded {
		bound.Add(-1)
	}
}

// Current returns the cell bound to the calling goroutine, or nil when the
// goroutine is not a controlled worker.
func Current() *rendezvous.Cell {
	if bound.Load() == 0 {
		return nil
	}
	v, ok := cells.Load(goid.ID())
	if !ok {
		return nil
	}
	return v.(*rendezvous.Cell)
}

// Len returns the number of live bindings.
func Len() int {
	return int(bound.Load())
}
