package waiterpool

import "sync"

// NewDynamic is a dynamic-size pool, a thin wrapper around sync.Pool —
// identical in spirit to the teacher library's pool.NewDynamic. Channels
// have no notion of a bounded waiter count to size a fixed pool against, so
// this is the only discipline wired in.
func NewDynamic(newFn func() any) Pool {
	return &sync.Pool{New: newFn}
}
