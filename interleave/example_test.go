package interleave_test

import (
	"fmt"

	"github.com/kolkov/interleave/interleave"
	"github.com/kolkov/interleave/shared"
)

// Example reproduces a lost update between two read-then-write increments.
func Example() {
	var n shared.Uint32
	inc := func(n *shared.Uint32) { n.Store(n.Load() + 1) }

	a := interleave.Spawn(&n)
	b := interleave.Spawn(&n)

	a.Act(inc)  // a parks before its Load
	a.Unblock() // a has read 0 and parks again

	b.Act(inc)
	for b.IsBlocked() {
		b.Unblock()
	}
	fmt.Println("after b:", n.Load())

	a.Close() // a resumes and stores its stale 0+1
	b.Close()
	fmt.Println("after a:", n.Load())

	// Output:
	// after b: 1
	// after a: 1
}

// Example_suspend shows a custom suspension point in user code.
func Example_suspend() {
	var log []string
	th := interleave.Spawn(&log)
	defer th.Close()

	th.Act(func(log *[]string) {
		*log = append(*log, "first half")
		interleave.Suspend()
		*log = append(*log, "second half")
	})
	fmt.Println(th.IsBlocked(), log)

	th.Unblock()
	fmt.Println(th.IsBlocked(), log)

	// Output:
	// true [first half]
	// false [first half second half]
}
