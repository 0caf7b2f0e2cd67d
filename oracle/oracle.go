// Package oracle turns a finite stream of bytes into scheduling and input
// decisions.
//
// An Oracle is the only external input of a fuzz run. The same bytes always
// produce the same decisions, so a failing run is reproduced by replaying its
// bytes, or the Seed that generated them. Decisions never fail because input
// ran out: an exhausted oracle answers every question with its lowest value,
// and reports Empty so the caller can stop.
package oracle

import (
	"errors"
	"math"
)

var (
	// ErrNoChoices is returned by Choose when there is nothing to choose.
	ErrNoChoices = errors.New("oracle: choose from zero alternatives")
	// ErrBadRange is returned by IntInRange when lo > hi.
	ErrBadRange = errors.New("oracle: empty integer range")
)

// Oracle yields decisions from a finite alphabet.
type Oracle interface {
	// Bool returns the next boolean decision.
	Bool() bool
	// Choose returns an index in [0, n).
	Choose(n int) (int, error)
	// IntInRange returns an integer in [lo, hi].
	IntInRange(lo, hi int) (int, error)
	// Empty reports whether the input is exhausted.
	Empty() bool
	// Consumed returns how many input bytes have been used.
	Consumed() int
}

// Bytes is an Oracle reading from a byte slice.
type Bytes struct {
	data []byte
	pos  int
}

var _ Oracle = (*Bytes)(nil)

// FromBytes returns an oracle reading data. data is not copied.
func FromBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

// Empty reports whether all input has been consumed.
func (b *Bytes) Empty() bool {
	return b.pos >= len(b.data)
}

// Consumed returns how many bytes have been read.
func (b *Bytes) Consumed() int {
	return b.pos
}

// Len returns how many bytes remain.
func (b *Bytes) Len() int {
	return len(b.data) - b.pos
}

// next returns the next byte, or 0 once the input is exhausted.
func (b *Bytes) next() byte {
	if b.pos >= len(b.data) {
		return 0
	}
	c := b.data[b.pos]
	b.pos++
	return c
}

// Bool consumes one byte and returns its low bit.
func (b *Bytes) Bool() bool {
	return b.next()&1 == 1
}

// Choose returns an index in [0, n).
func (b *Bytes) Choose(n int) (int, error) {
	if n <= 0 {
		return 0, ErrNoChoices
	}
	return b.IntInRange(0, n-1)
}

// IntInRange returns an integer in [lo, hi], consuming only as many bytes as
// the width of the range needs. A single-value range consumes nothing.
func (b *Bytes) IntInRange(lo, hi int) (int, error) {
	if lo > hi {
		return 0, ErrBadRange
	}
	span := uint64(hi) - uint64(lo)
	if span == 0 {
		return lo, nil
	}

	var x uint64
	for width := span; width > 0; width >>= 8 {
		x = x<<8 | uint64(b.next())
	}
	if span != math.MaxUint64 {
		x %= span + 1
	}
	return int(uint64(lo) + x), nil
}

// Int32 consumes four bytes and returns them as a signed integer.
func (b *Bytes) Int32() int32 {
	var x uint32
	for i := 0; i < 4; i++ {
		x = x<<8 | uint32(b.next())
	}
	return int32(x)
}
