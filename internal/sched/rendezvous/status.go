package rendezvous

import "fmt"

// Status is the state of one controlled worker as seen by its cell.
type Status uint8

const (
	// Ready means the worker is idle and waiting for a unit of work.
	Ready Status = iota
	// Running means the worker is executing a unit of work and is not
	// parked at a suspension point.
	Running
	// Blocked means the worker is parked at a suspension point and will
	// not make progress until released.
	Blocked
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Blocked:
		return "Blocked"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Legal reports whether a cell may move directly from one status to another.
//
// The only walk a cell ever takes is
//
//	Ready -> Running -> (Blocked -> Running)* -> Ready
func Legal(from, to Status) bool {
	switch {
	case from == Ready && to == Running:
		return true
	case from == Running && (to == Blocked || to == Ready):
		return true
	case from == Blocked && to == Running:
		return true
	default:
		return false
	}
}

// Transition describes one status change of a cell.
type Transition struct {
	From Status
	To   Status

	// Site is the callsite hash of the suspension point for
	// Running -> Blocked transitions, 0 otherwise.
	Site uint64
}

func (t Transition) String() string {
	return t.From.String() + "->" + t.To.String()
}

// ProtocolError is the panic value raised when the controller or a worker
// uses a cell in a state that does not permit the operation.
//
// These are harness bugs, not findings: continuing would run an undefined
// state machine, so they are never returned as errors.
type ProtocolError struct {
	Op   string // operation that was attempted
	Want Status // status the operation requires
	Got  Status // status the cell was actually in
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("rendezvous: %s requires status %s, got %s", e.Op, e.Want, e.Got)
}
