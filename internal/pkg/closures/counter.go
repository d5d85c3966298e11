package closures

import (
	"fmt"
	"sync"
)

// MakeCounter returns a function that increments a private count and
// returns the new value. The first call returns 1. Every MakeCounter call
// starts its own count.
func MakeCounter(opts ...Option) func() int {
	o := newOptions(opts)

	var mu sync.Mutex
	count := 0

	o.observe(FactoryCounter, OpCreate, nil)

	return func() int {
		mu.Lock()
		count++
		n := count
		mu.Unlock()

		o.reporter.Report(fmt.Sprintf("Inner: %d", n))
		o.observe(FactoryCounter, OpIncrement, nil)
		return n
	}
}
