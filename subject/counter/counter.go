// Package counter is a shared counter whose increment can be switched
// between a broken read-then-write and a correct fetch-and-add.
//
// The broken form is the canonical example of a bug only some interleavings
// expose: two workers both read n, both write n+1, and one increment is lost.
package counter

import (
	"fmt"

	"github.com/kolkov/interleave/shared"
)

// Mode selects how Increment updates the value.
type Mode int

const (
	// Buggy increments with a Load followed by a Store.
	Buggy Mode = iota
	// Atomic increments with a single fetch-and-add.
	Atomic
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Buggy:
		return "buggy"
	case Atomic:
		return "atomic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "buggy" or "atomic".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "buggy":
		return Buggy, nil
	case "atomic":
		return Atomic, nil
	default:
		return 0, fmt.Errorf("counter: unknown mode %q (want buggy or atomic)", s)
	}
}

// Counter is a uint32 counter safe to share between workers.
type Counter struct {
	value shared.Uint32
	mode  Mode
}

// New returns a zero counter using mode.
func New(mode Mode) *Counter {
	return &Counter{mode: mode}
}

// Mode returns the increment mode.
func (c *Counter) Mode() Mode {
	return c.mode
}

// Increment adds one.
func (c *Counter) Increment() {
	if c.mode == Atomic {
		c.value.Add(1)
		return
	}
	v := c.value.Load()
	c.value.Store(v + 1)
}

// Get returns the current value.
func (c *Counter) Get() uint32 {
	return c.value.Load()
}
