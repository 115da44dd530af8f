// Command badeffect must not compile: it acknowledges the wrong hazard
// set. The sideeffect tests build it and assert rejection.
package main

import (
	"fmt"

	"github.com/driftwall/driftwall/internal/sideeffect"
)

func main() {
	w := sideeffect.Tag[sideeffect.MayBlock](1)

	// The declared effect is MayBlock; naming a different hazard must not
	// type-check.
	fmt.Println(w.Allow(sideeffect.MayDeadlock{}))

	// Neither may a combined hazard be discharged by naming only half.
	both := sideeffect.Then(w, func(n int) sideeffect.Value[int, sideeffect.MayDeadlock] {
		return sideeffect.Tag[sideeffect.MayDeadlock](n)
	})
	fmt.Println(both.Allow(sideeffect.MayBlock{}))
}
