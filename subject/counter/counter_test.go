package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/interleave/interleave"
)

func TestCounter_Sequential(t *testing.T) {
	for _, mode := range []Mode{Buggy, Atomic} {
		t.Run(mode.String(), func(t *testing.T) {
			c := New(mode)
			for i := 0; i < 10; i++ {
				c.Increment()
			}
			assert.Equal(t, uint32(10), c.Get())
			assert.Equal(t, mode, c.Mode())
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("buggy")
	require.NoError(t, err)
	assert.Equal(t, Buggy, m)

	m, err = ParseMode("atomic")
	require.NoError(t, err)
	assert.Equal(t, Atomic, m)

	_, err = ParseMode("racy")
	assert.Error(t, err)
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

// lostUpdateSchedule parks worker 1 after its read, runs worker 2 to
// completion, then drains worker 1.
func lostUpdateSchedule(c *Counter) {
	inc := func(c *Counter) { c.Increment() }

	t1 := interleave.Spawn(c)
	t2 := interleave.Spawn(c)

	t1.Act(inc)  // before Load
	t1.Unblock() // after Load

	t2.Act(inc)
	for t2.IsBlocked() {
		t2.Unblock()
	}

	t1.Close()
	t2.Close()
}

func TestCounter_LostUpdate(t *testing.T) {
	c := New(Buggy)
	lostUpdateSchedule(c)
	assert.Equal(t, uint32(1), c.Get())
}

func TestCounter_AtomicSurvivesSchedule(t *testing.T) {
	c := New(Atomic)
	lostUpdateSchedule(c)
	assert.Equal(t, uint32(2), c.Get())
}
