// Package memory is the in-process Entity Store: mutex-guarded maps with
// atomic-counter identity assignment. It backs local runs and the service
// tests; the mongo package is the durable twin.
package memory

import (
	"strconv"
	"sync/atomic"
)

// sequence hands out monotonically increasing string identities.
type sequence struct {
	counter atomic.Int64
}

func (s *sequence) next() string {
	return strconv.FormatInt(s.counter.Add(1), 10)
}
