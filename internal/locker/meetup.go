package locker

import (
	"context"

	"github.com/driftwall/driftwall/internal/meetup"
	"github.com/driftwall/driftwall/internal/sideeffect"
)

// MeetupSender gates the sending endpoint of a rendezvous channel on the
// lock-order discipline. Sending is usable only from state S and leaves
// the state unchanged: a completed handoff holds nothing afterward.
type MeetupSender[T any, S State] struct {
	name string
	tx   meetup.Sender[T]
}

// NewMeetupSender wraps tx as a lock-order resource and records its edge
// in g. The receiving endpoint stays ungated; receiving acquires nothing.
func NewMeetupSender[T any, S State](g *Graph, name string, tx meetup.Sender[T]) *MeetupSender[T, S] {
	var s S
	g.add(Edge{Resource: name, Kind: KindMeetup, From: s.LockRank(), To: s.LockRank()})
	return &MeetupSender[T, S]{name: name, tx: tx}
}

// Name returns the resource name declared at construction.
func (s *MeetupSender[T, S]) Name() string { return s.name }

// Send hands v to the receiver, suspending until it is claimed. The token
// is reissued in the same state.
func (s *MeetupSender[T, S]) Send(tok Token[S], v T) Token[S] {
	s.tx.Send(v).Allow(sideeffect.MayBlock{})
	return tok
}

// SendContext is Send with a deadline, for shutdown paths where the
// receiver may already be gone.
func (s *MeetupSender[T, S]) SendContext(ctx context.Context, tok Token[S], v T) (Token[S], error) {
	return tok, s.tx.SendContext(ctx, v)
}
