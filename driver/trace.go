package driver

import (
	"fmt"
	"strings"

	"github.com/kolkov/interleave/interleave"
)

// Action is what the driver did to a worker in one step.
type Action int

const (
	// Act submitted a new unit of work to an idle worker.
	Act Action = iota
	// Unblock released a blocked worker.
	Unblock
	// Drain released a blocked worker during shutdown.
	Drain
)

func (a Action) String() string {
	switch a {
	case Act:
		return "act"
	case Unblock:
		return "unblock"
	case Drain:
		return "drain"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Step is one scheduling decision and the status it led to.
type Step struct {
	Worker int
	Action Action
	// Label describes the submitted work for Act steps.
	Label string
	// After is the worker status once the step returned: Blocked or Ready.
	After interleave.Status
	// Site is where the worker is parked when After is Blocked.
	Site string
}

func (s Step) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "worker %d %s", s.Worker, s.Action)
	if s.Label != "" {
		fmt.Fprintf(&b, " %s", s.Label)
	}
	fmt.Fprintf(&b, " -> %s", s.After)
	if s.Site != "" {
		fmt.Fprintf(&b, " at %s", s.Site)
	}
	return b.String()
}

// Trace is the interleaving a run executed, in order.
type Trace []Step

// String renders one numbered step per line.
func (t Trace) String() string {
	var b strings.Builder
	for i, s := range t {
		fmt.Fprintf(&b, "  #%03d %s\n", i, s)
	}
	return b.String()
}

// Count returns how many steps used action a.
func (t Trace) Count(a Action) int {
	n := 0
	for _, s := range t {
		if s.Action == a {
			n++
		}
	}
	return n
}
