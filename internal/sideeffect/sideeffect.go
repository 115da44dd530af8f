// Package sideeffect tags values produced by hazardous calls so the hazard
// is visible and grep-able at every call site.
//
// A function whose call may block the calling thread, or may deadlock when
// its documented preconditions are violated, returns its result wrapped in a
// Value carrying the effect marker. The inner value is inaccessible until the
// caller acknowledges the exact hazard set:
//
//	out := recv.Recv().Allow(sideeffect.MayBlock{})
//
// The acknowledgment is not enforcement: violating the invariant a marker
// documents still hangs rather than crashes. The marker only guarantees the
// hazard is named where it is incurred.
package sideeffect

// Effect is a zero-size hazard marker. The set of effects is closed: the
// concurrency core knows exactly which hazards it can incur.
type Effect interface {
	effect()
}

// MayBlock marks a call that can suspend the calling task indefinitely,
// e.g. a rendezvous send with no receiver.
type MayBlock struct{}

func (MayBlock) effect() {}

// MayDeadlock marks a call that can deadlock if the caller holds a guard it
// is not supposed to hold. The locker token discipline normally rules this
// out; the marker survives for call sites that bypass it.
type MayDeadlock struct{}

func (MayDeadlock) effect() {}

// Pair combines two effect markers. Chained effectful calls accumulate
// their hazards as nested pairs, and Allow must name the whole set.
type Pair[A, B Effect] struct {
	A A
	B B
}

func (Pair[A, B]) effect() {}

// Value holds a result whose production incurred the effect E. The zero
// value of Value is usable and holds the zero value of V.
type Value[V any, E Effect] struct {
	v V
}

// Tag wraps v with the effect marker E. Callers instantiate E explicitly so
// the hazard appears in source at the point it is incurred:
//
//	return sideeffect.Tag[sideeffect.MayBlock](n)
func Tag[E Effect, V any](v V) Value[V, E] {
	return Value[V, E]{v: v}
}

// Allow acknowledges the declared effect set and returns the bare value.
// The parameter type must equal the declared marker type, so naming a
// different (or partial) hazard set does not compile.
func (w Value[V, E]) Allow(E) V {
	return w.v
}

// Map transforms the inner value while preserving the marker.
func (w Value[V, E]) Map(f func(V) V) Value[V, E] {
	return Value[V, E]{v: f(w.v)}
}

// Map transforms the inner value to a different type while preserving the
// marker. The method form cannot change the value type.
func Map[V, U any, E Effect](w Value[V, E], f func(V) U) Value[U, E] {
	return Value[U, E]{v: f(w.v)}
}

// Then chains an effectful continuation. The result carries both hazards,
// and Allow on it must name the combined pair.
func Then[V, U any, A, B Effect](w Value[V, A], f func(V) Value[U, B]) Value[U, Pair[A, B]] {
	return Value[U, Pair[A, B]]{v: f(w.v).v}
}
