package shared

import (
	"sync/atomic"

	"github.com/kolkov/interleave/interleave"
)

// Uint64 is an instrumented atomic uint64.
type Uint64 struct {
	_ noCopy
	v atomic.Uint64
}

// Load atomically loads the value.
func (x *Uint64) Load() uint64 {
	interleave.Suspend()
	v := x.v.Load()
	interleave.Suspend()
	return v
}

// Store atomically stores val.
func (x *Uint64) Store(val uint64) {
	interleave.Suspend()
	x.v.Store(val)
	interleave.Suspend()
}

// Add atomically adds delta and returns the new value. Unlike a Load
// followed by a Store, no other worker can interleave between the read and
// the write.
func (x *Uint64) Add(delta uint64) (new uint64) {
	interleave.Suspend()
	new = x.v.Add(delta)
	interleave.Suspend()
	return new
}

// CompareAndSwap executes the compare-and-swap operation for the value.
func (x *Uint64) CompareAndSwap(old, new uint64) (swapped bool) {
	interleave.Suspend()
	swapped = x.v.CompareAndSwap(old, new)
	interleave.Suspend()
	return swapped
}
