package gochannels

import "sync"

// waiter is a one-shot suspension handle parked in a waitGroup's queue. A
// parked goroutine blocks receiving from resultCh; whichever of wakeNext,
// wakeAll, or abort pops this waiter out of the queue sends exactly once.
//
// Only the code that pops a waiter out of queue storage may return it to the
// pool (see waitGroup.wakeNext and waitGroup.completeAll). The waiting
// goroutine itself never recycles
// its own waiter, even after resultCh fires or its context is cancelled: if
// it also lost the queue race against a concurrent wakeNext, a second
// completion would otherwise be delivered into a struct some other goroutine
// has already reused. resultCh is a fresh channel value each time the pool
// hands a waiter out, so a goroutine still draining an old resultCh is
// unaffected by the struct being reset and reissued underneath it.
type waiter struct {
	resultCh chan error
	once     sync.Once
}

func newWaiterValue() any {
	w := &waiter{resultCh: make(chan error, 1)}
	return w
}

// reset prepares a pooled waiter for reuse. It must only be called by the
// side that is about to hand the waiter to a new parked caller — never by a
// goroutine that is merely done waiting on it.
func (w *waiter) reset() {
	w.once = sync.Once{}
	// A fresh channel, not a drained reuse of the old one: any goroutine
	// still holding a reference to the previous resultCh (because it lost a
	// queue race concurrently with this reset) keeps observing that old,
	// now-orphaned channel rather than a spuriously reused one.
	w.resultCh = make(chan error, 1)
}

// complete delivers err to the parked goroutine, if it has not already been
// completed. It reports whether this call was the one that completed it.
func (w *waiter) complete(err error) bool {
	delivered := false
	w.once.Do(func() {
		w.resultCh <- err
		delivered = true
	})
	return delivered
}
