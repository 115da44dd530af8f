package locker

import (
	"fmt"
	"sort"
	"sync"
)

// Edge kinds recorded in the lock-order graph.
const (
	KindMutex   = "mutex"
	KindRWRead  = "rwmutex-read"
	KindRWWrite = "rwmutex-write"
	KindMeetup  = "meetup-send"
)

// Edge is one entry of the lock-order graph: acquiring Resource from a
// token at rank From reissues a token at rank To.
type Edge struct {
	Resource string
	Kind     string
	From     int
	To       int
}

// Graph is the lock-order table for one resource bundle. Resource
// constructors record their edges here; Validate checks the properties the
// deadlock-freedom argument relies on. A Graph is immutable once the bundle
// finishes construction.
type Graph struct {
	mu    sync.Mutex
	edges []Edge
}

// NewGraph creates an empty lock-order graph.
func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) add(e Edge) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges = append(g.edges, e)
}

// Edges returns a copy of the recorded edges, sorted by from-rank then
// resource name.
func (g *Graph) Edges() []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].Resource < out[j].Resource
	})
	return out
}

// Validate checks the whole table:
//
//   - lock edges are strictly monotonic (To > From), which is what rules
//     out circular waits;
//   - meetup-send edges leave the state unchanged (To == From), since a
//     completed handoff holds nothing afterward;
//   - no resource declares the same kind of edge twice: a name appears at
//     most once per kind, so an rwlock contributes exactly one read edge
//     and one write edge.
//
// The type system checks each call site against its edge; only Validate
// checks the table itself, so the bundle must run it at startup.
func (g *Graph) Validate() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seen := make(map[string]Edge, len(g.edges))
	for _, e := range g.edges {
		key := e.Resource + "/" + e.Kind
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("locker: resource %q declared twice (%s %d->%d and %d->%d)",
				e.Resource, e.Kind, prev.From, prev.To, e.From, e.To)
		}
		seen[key] = e

		switch e.Kind {
		case KindMeetup:
			if e.To != e.From {
				return fmt.Errorf("locker: meetup resource %q changes state %d->%d, want unchanged",
					e.Resource, e.From, e.To)
			}
		default:
			if e.To <= e.From {
				return fmt.Errorf("locker: %s resource %q has non-monotonic edge %d->%d",
					e.Kind, e.Resource, e.From, e.To)
			}
		}
	}
	return nil
}
