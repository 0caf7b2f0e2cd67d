// Package shared provides atomic values instrumented with suspension points.
//
// Each operation suspends before touching the underlying value and again
// after. The pair lets a driver stop a worker in the middle of a compound
// operation: after it has read a value but before it writes the result back.
// Outside a controlled worker the suspension points are no-ops and the types
// behave exactly like their sync/atomic counterparts.
//
// The zero value of each type is ready to use and holds 0.
package shared

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

// Lock is a no-op used by the go vet copylocks checker.
func (*noCopy) Lock() {}

// Unlock is a no-op used by the go vet copylocks checker.
func (*noCopy) Unlock() {}
