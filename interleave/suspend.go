package interleave

import (
	"github.com/kolkov/interleave/internal/sched/registry"
	"github.com/kolkov/interleave/internal/sched/rendezvous"
)

// Status is the state of a controlled worker.
type Status = rendezvous.Status

// Worker statuses.
const (
	Ready   = rendezvous.Ready
	Running = rendezvous.Running
	Blocked = rendezvous.Blocked
)

// Transition is one status change of a worker's rendezvous cell.
type Transition = rendezvous.Transition

// ProtocolError is the panic value for misuse of a Thread.
type ProtocolError = rendezvous.ProtocolError

// Legal reports whether a worker may move directly between two statuses.
func Legal(from, to Status) bool {
	return rendezvous.Legal(from, to)
}

// Suspend is the suspension point.
//
// On a controlled worker goroutine it parks until the driver calls Unblock.
// On any other goroutine it returns immediately.
func Suspend() {
	if c := registry.Current(); c != nil {
		c.Suspend()
	}
}

// Controlled reports whether the calling goroutine is a controlled worker.
func Controlled() bool {
	return registry.Current() != nil
}

func liveWorkers() int {
	return registry.Len()
}
