package shared

import (
	"sync/atomic"

	"github.com/kolkov/interleave/interleave"
)

// Uint32 is an instrumented atomic uint32.
type Uint32 struct {
	_ noCopy
	v atomic.Uint32
}

// Load atomically loads the value.
func (x *Uint32) Load() uint32 {
	interleave.Suspend()
	v := x.v.Load()
	interleave.Suspend()
	return v
}

// Store atomically stores val.
func (x *Uint32) Store(val uint32) {
	interleave.Suspend()
	x.v.Store(val)
	interleave.Suspend()
}

// Add atomically adds delta and returns the new value. Unlike a Load
// followed by a Store, no other worker can interleave between the read and
// the write.
func (x *Uint32) Add(delta uint32) (new uint32) {
	interleave.Suspend()
	new = x.v.Add(delta)
	interleave.Suspend()
	return new
}

// CompareAndSwap executes the compare-and-swap operation for the value.
func (x *Uint32) CompareAndSwap(old, new uint32) (swapped bool) {
	interleave.Suspend()
	swapped = x.v.CompareAndSwap(old, new)
	interleave.Suspend()
	return swapped
}
