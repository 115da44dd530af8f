// Package meetup provides a rendezvous channel: a synchronous, single-slot
// handoff between exactly one sender and one receiver.
//
// A send suspends the calling task until a receive is concurrently ready,
// and vice versa; then exactly one value transfers and both sides resume.
// Nothing is buffered and no value is silently dropped, so a producer can
// never race ahead and overwrite an unconsumed value.
//
// If the peer is permanently gone, a blocking send or receive suspends
// forever. That leak is accepted only during shutdown; steady-state code
// must keep both endpoints alive, or use the context-aware variants.
package meetup

import (
	"context"

	"github.com/driftwall/driftwall/internal/sideeffect"
)

// Sender is the sending endpoint of a rendezvous channel.
type Sender[T any] struct {
	ch chan<- T
}

// Receiver is the receiving endpoint of a rendezvous channel.
type Receiver[T any] struct {
	ch <-chan T
}

// New creates a connected sender/receiver pair.
func New[T any]() (Sender[T], Receiver[T]) {
	ch := make(chan T)
	return Sender[T]{ch: ch}, Receiver[T]{ch: ch}
}

// Send hands v to the receiver, suspending until the receiver claims it.
func (s Sender[T]) Send(v T) sideeffect.Value[struct{}, sideeffect.MayBlock] {
	s.ch <- v
	return sideeffect.Tag[sideeffect.MayBlock](struct{}{})
}

// SendContext hands v to the receiver, giving up when ctx is done.
// Used on shutdown paths where the receiver may already have exited.
func (s Sender[T]) SendContext(ctx context.Context, v T) error {
	select {
	case s.ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv claims the next value, suspending until the sender offers one.
func (r Receiver[T]) Recv() sideeffect.Value[T, sideeffect.MayBlock] {
	return sideeffect.Tag[sideeffect.MayBlock](<-r.ch)
}

// RecvContext claims the next value, giving up when ctx is done.
func (r Receiver[T]) RecvContext(ctx context.Context) (T, error) {
	select {
	case v := <-r.ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryRecv claims a value only if a sender is already suspended offering
// one. It never blocks.
func (r Receiver[T]) TryRecv() (T, bool) {
	select {
	case v := <-r.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}
