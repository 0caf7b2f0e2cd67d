package driver

import (
	"errors"
	"fmt"
)

// ErrNoWorkers is returned when a run is configured with fewer than one
// worker.
var ErrNoWorkers = errors.New("driver: at least one worker is required")

// Mismatch is returned by a scenario's Check when the observed subject
// disagrees with the reference model.
type Mismatch struct {
	What   string // the compared quantity
	Want   any    // reference model value
	Got    any    // observed value
	Detail string // optional dump of the subject state
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: want %v, got %v", m.What, m.Want, m.Got)
}

// Divergence is a confirmed finding: the subject ended in a state its
// sequential reference model rules out. Trace is the interleaving that
// produced it.
type Divergence struct {
	Scenario string
	Cause    error
	Trace    Trace
}

func (d *Divergence) Error() string {
	msg := fmt.Sprintf("%s: %v\ninterleaving (%d steps):\n%s", d.Scenario, d.Cause, len(d.Trace), d.Trace)
	var m *Mismatch
	if errors.As(d.Cause, &m) && m.Detail != "" {
		msg += "state:\n" + m.Detail
	}
	return msg
}

func (d *Divergence) Unwrap() error {
	return d.Cause
}
