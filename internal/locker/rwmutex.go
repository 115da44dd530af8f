package locker

import "sync"

// RWMutex wraps a value in a shared/exclusive lock. The read and write
// paths may target different next-states; declaring WTo below RTo (while
// both stay above From) forbids read-to-write upgrades within a chain.
type RWMutex[T any, From, RTo, WTo State] struct {
	name string
	mu   sync.RWMutex
	v    T
}

// NewRWMutex creates the rwlock around v and records its read and write
// edges in g.
func NewRWMutex[T any, From, RTo, WTo State](g *Graph, name string, v T) *RWMutex[T, From, RTo, WTo] {
	var from From
	var rto RTo
	var wto WTo
	g.add(Edge{Resource: name, Kind: KindRWRead, From: from.LockRank(), To: rto.LockRank()})
	g.add(Edge{Resource: name, Kind: KindRWWrite, From: from.LockRank(), To: wto.LockRank()})
	return &RWMutex[T, From, RTo, WTo]{name: name, v: v}
}

// Name returns the resource name declared at construction.
func (m *RWMutex[T, From, RTo, WTo]) Name() string { return m.name }

// RLock acquires shared access. Any number of read guards may be
// outstanding at once; a read guard must treat the value as immutable.
func (m *RWMutex[T, From, RTo, WTo]) RLock(Token[From]) (*ReadGuard[T], Token[RTo]) {
	m.mu.RLock()
	return &ReadGuard[T]{v: &m.v, release: m.mu.RUnlock}, Token[RTo]{}
}

// Lock acquires exclusive access.
func (m *RWMutex[T, From, RTo, WTo]) Lock(Token[From]) (*WriteGuard[T], Token[WTo]) {
	m.mu.Lock()
	return &WriteGuard[T]{v: &m.v, release: m.mu.Unlock}, Token[WTo]{}
}

// ReadGuard is scoped shared access to an rwlock-protected value.
type ReadGuard[T any] struct {
	v       *T
	release func()
	done    bool
}

// Value returns the protected value. The value must not be mutated through
// a read guard, and must not be used after Unlock.
func (g *ReadGuard[T]) Value() *T {
	if g.done {
		panic("locker: guard used after Unlock")
	}
	return g.v
}

// Unlock releases the shared hold. Unlocking twice is a no-op.
func (g *ReadGuard[T]) Unlock() {
	if g.done {
		return
	}
	g.done = true
	g.release()
}

// WriteGuard is scoped exclusive access to an rwlock-protected value.
type WriteGuard[T any] struct {
	v       *T
	release func()
	done    bool
}

// Value returns the protected value. It must not be used after Unlock.
func (g *WriteGuard[T]) Value() *T {
	if g.done {
		panic("locker: guard used after Unlock")
	}
	return g.v
}

// Unlock releases the resource. Unlocking twice is a no-op.
func (g *WriteGuard[T]) Unlock() {
	if g.done {
		return
	}
	g.done = true
	g.release()
}
