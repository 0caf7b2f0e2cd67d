package oracle

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Bool(t *testing.T) {
	o := FromBytes([]byte{1, 2, 3})
	assert.True(t, o.Bool())
	assert.False(t, o.Bool())
	assert.True(t, o.Bool())
	assert.True(t, o.Empty())

	// Exhausted input answers false without failing.
	assert.False(t, o.Bool())
	assert.Equal(t, 3, o.Consumed())
}

func TestBytes_Choose(t *testing.T) {
	o := FromBytes([]byte{7, 255})

	i, err := o.Choose(3)
	require.NoError(t, err)
	assert.Equal(t, 1, i) // 7 % 3

	i, err = o.Choose(3)
	require.NoError(t, err)
	assert.Equal(t, 0, i) // 255 % 3

	i, err = o.Choose(3)
	require.NoError(t, err)
	assert.Equal(t, 0, i, "exhausted input picks the first alternative")

	_, err = o.Choose(0)
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestBytes_IntInRange(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		lo, hi   int
		want     int
		consumed int
	}{
		{"single value consumes nothing", []byte{9}, 5, 5, 5, 0},
		{"one byte span", []byte{250}, 0, 100, 250 % 101, 1},
		{"two byte span", []byte{0x01, 0x02}, 0, 1000, 0x0102, 2},
		{"negative range", []byte{3}, -5, 5, -5 + 3, 1},
		{"exhausted gives lo", nil, 10, 20, 10, 0},
		{"full range", []byte{0, 0, 0, 0, 0, 0, 0, 0}, math.MinInt, math.MaxInt, math.MinInt, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := FromBytes(tt.data)
			got, err := o.IntInRange(tt.lo, tt.hi)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, o.Consumed())
		})
	}

	_, err := FromBytes(nil).IntInRange(2, 1)
	assert.ErrorIs(t, err, ErrBadRange)
}

func TestBytes_IntInRange_Bounds(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(r.Uint32())
	}
	o := FromBytes(data)
	for !o.Empty() {
		lo := r.IntN(200) - 100
		hi := lo + r.IntN(70000)
		v, err := o.IntInRange(lo, hi)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, lo)
		require.LessOrEqual(t, v, hi)
	}
}

func TestBytes_Int32(t *testing.T) {
	o := FromBytes([]byte{0xff, 0xff, 0xff, 0xfe, 0x00, 0x00, 0x01})
	assert.Equal(t, int32(-2), o.Int32())
	assert.Equal(t, int32(0x100), o.Int32(), "short input is zero-padded on the right")
	assert.Equal(t, 0, o.Len())
}

func TestSeed_Deterministic(t *testing.T) {
	s := Seed(0xff9d5f7f00000020)
	assert.Equal(t, 32, s.Size())
	assert.Equal(t, s.Bytes(), s.Bytes())
	assert.Len(t, s.Bytes(), 32)
	assert.NotEqual(t, s.Bytes(), Seed(0x43e1e68400000020).Bytes())
}

func TestSeed_StringRoundTrip(t *testing.T) {
	s := Seed(0x43e1e68400000005)
	assert.Equal(t, "0x43e1e68400000005", s.String())

	parsed, err := ParseSeed(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)

	parsed, err = ParseSeed("17")
	require.NoError(t, err)
	assert.Equal(t, Seed(17), parsed)

	_, err = ParseSeed("not-a-seed")
	assert.Error(t, err)

	var u Seed
	require.NoError(t, u.UnmarshalText([]byte("0x10")))
	assert.Equal(t, Seed(16), u)
}

func TestNewSeed(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	s := NewSeed(r, 64)
	assert.Equal(t, 64, s.Size())
	assert.Equal(t, 64, s.Oracle().Len())
}
