// Package waiterpool adapts the worker-pool library's object-pool
// abstraction to recycle waiter allocations on the hot wait/wake path,
// instead of pooling worker goroutines.
package waiterpool

// Pool is an interface that defines methods on a pool of waiters. It is the
// same shape as the teacher library's pool.Pool, narrowed to the one
// implementation channels actually need (see DESIGN.md for why the
// fixed-size, channel-backed pool variant was not carried over).
type Pool interface {
	// Get returns a pooled value, allocating a fresh one if none is idle.
	Get() any

	// Put returns a value to the pool for reuse.
	Put(any)
}
