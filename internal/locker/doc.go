// Package locker implements a token-gated lock-ordering discipline that
// makes lock-order deadlocks structurally impossible for code that only
// acquires shared resources through its gated accessors.
//
// Every protected resource is declared with a position in a single global
// acquisition order: a (from-state, to-state) edge in the lock-order graph.
// A task mints one Token at its root, in the initial state, and threads it
// through every acquisition. Locking a resource consumes a token of the
// resource's from-state type and reissues a token of its to-state type, so
// the compiler rejects any call chain that tries to acquire resources out
// of the declared order, or to re-acquire past a state it has already
// advanced beyond. No runtime deadlock detector is involved.
//
// The deadlock-freedom argument: every edge is monotonic (to-state ranks
// strictly above from-state for locks), so all tasks acquire resources in
// an order consistent with one global order and no cycle of waiters can
// form. The compiler checks each call site against its edge; Graph.Validate
// checks the monotonicity of the table itself and must be run at startup.
//
// Ordinary contention, a bounded wait for a single resource held by
// another task, remains and is accepted. A guard must not be held across
// a suspension other than a further gated acquisition on the same
// advancing token, or the bound on that wait no longer holds.
package locker
