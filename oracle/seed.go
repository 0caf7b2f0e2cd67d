package oracle

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Seed names a reproducible oracle input.
//
// The upper 32 bits seed a PCG generator; the lower 32 bits are the number
// of bytes generated. Seeds print as 0x-prefixed hex, the form accepted by
// ParseSeed and the INTERLEAVE_SEED environment variable.
type Seed uint64

// NewSeed draws a random seed for an input of size bytes.
func NewSeed(r *rand.Rand, size uint32) Seed {
	return Seed(uint64(r.Uint32())<<32 | uint64(size))
}

// ParseSeed parses a seed in decimal or 0x-prefixed hex.
func ParseSeed(s string) (Seed, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("oracle: invalid seed %q: %w", s, err)
	}
	return Seed(v), nil
}

// Size returns the number of input bytes the seed generates.
func (s Seed) Size() int {
	return int(uint32(s))
}

// Bytes generates the seed's input.
func (s Seed) Bytes() []byte {
	r := rand.New(rand.NewPCG(uint64(s>>32), 0))
	data := make([]byte, s.Size())
	for i := range data {
		data[i] = byte(r.Uint32())
	}
	return data
}

// Oracle returns a fresh oracle over the seed's input.
func (s Seed) Oracle() *Bytes {
	return FromBytes(s.Bytes())
}

// String formats the seed as 0x-prefixed, zero-padded hex.
func (s Seed) String() string {
	return fmt.Sprintf("0x%016x", uint64(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	v, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
