// Package interleave forces worker goroutines to run in an externally chosen
// interleaving.
//
// A driver spawns one [Thread] per worker and hands each a unit of work with
// [Thread.Act]. Shared-state operations call [Suspend] at their entry and exit.
// When a controlled worker reaches a suspension point it parks, and Act
// returns with the worker reported as blocked. The driver then decides which
// worker moves next: [Thread.Unblock] releases one worker up to its next
// suspension point (or to completion), Act starts new work on an idle one.
//
// Every controller call is synchronous. Act and Unblock return only once the
// worker has reached its next well-defined status, so although workers are
// real goroutines the driver observes a single-stepped execution. That is
// what lets a fuzzer reach the schedules where bugs hide, for example the
// lost update of a read-then-write increment:
//
//	var n shared.Uint32
//	a, b := interleave.Spawn(&n), interleave.Spawn(&n)
//	inc := func(n *shared.Uint32) { n.Store(n.Load() + 1) }
//
//	a.Act(inc)   // a parks before its Load
//	a.Unblock()  // a parks after its Load (it has read 0)
//	b.Act(inc)   // b parks before its Load
//	for b.IsBlocked() {
//		b.Unblock() // b runs to completion: n == 1
//	}
//	a.Close()    // a drains, writing its stale 0+1: n == 1, not 2
//	b.Close()
//
// # Suspension points
//
// [Suspend] is a no-op on goroutines that are not controlled workers, so
// instrumented code behaves normally outside the harness. Package shared
// provides instrumented atomics; any other data structure can call Suspend
// directly.
//
// # Protocol violations
//
// Calling Act on a thread that is not idle, or Unblock on one that is not
// blocked, panics with a *ProtocolError. Those are bugs in the driver, not
// findings about the code under test.
//
// # Liveness
//
// There are no timeouts. A driver that forgets to release a blocked worker
// deadlocks. [Thread.Close] always drains a blocked worker to completion
// before joining it, so closing every thread is enough to terminate.
package interleave
