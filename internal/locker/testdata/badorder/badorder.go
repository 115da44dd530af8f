// Command badorder must not compile: it acquires resources against the
// declared lock order. The locker tests build it and assert rejection.
package main

import (
	"fmt"

	"github.com/driftwall/driftwall/internal/locker"
)

type stateRoot struct{}

func (stateRoot) LockRank() int { return 0 }

type stateA struct{}

func (stateA) LockRank() int { return 1 }

type stateB struct{}

func (stateB) LockRank() int { return 2 }

func main() {
	g := locker.NewGraph()
	x := locker.NewMutex[int, stateRoot, stateA](g, "x", 0)
	y := locker.NewMutex[int, stateA, stateB](g, "y", 0)

	tok := locker.Initial[stateRoot]()

	// The graph only permits x then y. Acquiring y first needs a
	// Token[stateA], which only locking x can produce.
	gy, tok2 := y.Lock(tok)
	defer gy.Unlock()

	// And after y the chain has advanced past x's from-state.
	gx, _ := x.Lock(tok2)
	defer gx.Unlock()

	fmt.Println(*gx.Value(), *gy.Value())
}
