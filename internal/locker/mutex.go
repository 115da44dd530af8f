package locker

import "sync"

// Mutex wraps a value in an exclusive lock with a declared lock-order edge:
// it is acquirable only with a token in state From, and acquiring it
// reissues a token in state To.
type Mutex[T any, From, To State] struct {
	name string
	mu   sync.Mutex
	v    T
}

// NewMutex creates the mutex around v and records its edge in g.
// Resources are created once at startup and live for the process lifetime.
func NewMutex[T any, From, To State](g *Graph, name string, v T) *Mutex[T, From, To] {
	var from From
	var to To
	g.add(Edge{Resource: name, Kind: KindMutex, From: from.LockRank(), To: to.LockRank()})
	return &Mutex[T, From, To]{name: name, v: v}
}

// Name returns the resource name declared at construction.
func (m *Mutex[T, From, To]) Name() string { return m.name }

// Lock acquires exclusive access. The call suspends the task while another
// guard is outstanding; release the guard with Unlock (usually deferred).
func (m *Mutex[T, From, To]) Lock(Token[From]) (*MutexGuard[T], Token[To]) {
	m.mu.Lock()
	return &MutexGuard[T]{v: &m.v, release: m.mu.Unlock}, Token[To]{}
}

// MutexGuard is scoped exclusive access to a mutex-protected value.
type MutexGuard[T any] struct {
	v       *T
	release func()
	done    bool
}

// Value returns the protected value. It must not be used after Unlock.
func (g *MutexGuard[T]) Value() *T {
	if g.done {
		panic("locker: guard used after Unlock")
	}
	return g.v
}

// Unlock releases the resource to the next acquirer. Unlocking twice is a
// no-op, so it is safe to defer Unlock and also release early.
func (g *MutexGuard[T]) Unlock() {
	if g.done {
		return
	}
	g.done = true
	g.release()
}
