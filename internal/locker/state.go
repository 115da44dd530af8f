package locker

import "fmt"

// State is implemented by the zero-size marker types that name positions in
// the lock-acquisition order. The resource bundle declares one marker per
// position; ranks must be unique and the initial state must rank 0.
type State interface {
	LockRank() int
}

// Token is a zero-data capability whose type parameter records the current
// position in the lock-acquisition order. Gated accessors consume a token
// by value and reissue one in the advanced state; exactly one token should
// be alive per call chain. Tokens carry no runtime data and must not be
// stored or shared between tasks.
type Token[S State] struct {
	_ [0]func() // non-comparable, so tokens cannot be used as map keys
}

// Initial mints the root token for a new task. Only the rank-0 state may be
// minted; anything else panics, since a mid-order token would let a task
// bypass the acquisition order.
func Initial[S State]() Token[S] {
	var s S
	if s.LockRank() != 0 {
		panic(fmt.Sprintf("locker: Initial minted at rank %d state %T, want rank 0", s.LockRank(), s))
	}
	return Token[S]{}
}

// Advance reissues a token at a later position without acquiring anything,
// for call chains that do not need every resource below their first
// acquisition. Skipping forward never creates a cycle of waiters; skipping
// backward would, so a rank regression panics.
func Advance[From, To State](Token[From]) Token[To] {
	var from From
	var to To
	if to.LockRank() < from.LockRank() {
		panic(fmt.Sprintf("locker: Advance from %T (rank %d) to %T (rank %d) goes backward",
			from, from.LockRank(), to, to.LockRank()))
	}
	return Token[To]{}
}
