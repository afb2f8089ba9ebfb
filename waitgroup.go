package gochannels

import (
	"context"
	"sync"

	"github.com/ygrebnov/gochannels/internal/waiterpool"
	"github.com/ygrebnov/gochannels/storage"
)

// waitGroup is a FIFO of parked waiters guarded by a mutex. The mutex stands
// in for the atomicity a single cooperative scheduler thread gave the
// original design for free: every mutation of the queue, and every decision
// about who gets woken, happens while it is held.
type waitGroup struct {
	mu      sync.Mutex
	waiters storage.Storage[*waiter]
	pool    waiterpool.Pool
}

func newWaitGroup() *waitGroup {
	return &waitGroup{
		waiters: storage.NewFIFO[*waiter](),
		pool:    waiterpool.NewDynamic(newWaiterValue),
	}
}

// wait parks the calling goroutine until woken by wakeNext, wakeAll, or
// abort, or until ctx is cancelled. afterJoin, if non-nil, runs while this
// waiter is already registered in the queue but before releasing the group's
// mutex — the rendezvous variants use it to nudge the opposite side's
// waitGroup so a counterpart parked in the same race window is never missed.
func (g *waitGroup) wait(ctx context.Context, afterJoin func()) error {
	g.mu.Lock()
	w := g.pool.Get().(*waiter)
	w.reset()
	ch := w.resultCh
	g.waiters.Put(w)
	if afterJoin != nil {
		afterJoin()
	}
	g.mu.Unlock()

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		if w.complete(ctx.Err()) {
			// No real wakeup reached this waiter before cancellation. It is
			// still sitting in the queue as a completed ghost entry — the
			// next wakeNext/wakeAll/abort pass will discover it already
			// completed and discard it without spending a wakeup on it.
			return ctx.Err()
		}
		// Lost the race: a real wakeup already completed this waiter and
		// recycled it. Take the delivered result from the channel captured
		// at park time — w.resultCh itself must not be re-read here, since
		// a concurrent reset() may already have overwritten it for a new
		// caller that reused this same pooled waiter.
		return <-ch
	}
}

// len reports how many waiters are currently queued, including any
// completed-but-not-yet-popped ghost entries left behind by a context
// cancellation that raced a real wakeup.
func (g *waitGroup) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiters.Len()
}

// wakeNext wakes the oldest live waiter with a nil error, discarding any
// already-completed ghost entries ahead of it in the queue.
func (g *waitGroup) wakeNext() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for !g.waiters.Empty() {
		w := g.waiters.Get()
		if w.complete(nil) {
			g.pool.Put(w)
			return
		}
		g.pool.Put(w)
	}
}

// wakeAll wakes every currently parked waiter with a nil error. Used by
// broadcast sends, where every parked receiver gets a chance to race for the
// message but only one will win the commit.
func (g *waitGroup) wakeAll() {
	g.completeAll(nil)
}

// abort wakes every currently parked waiter with err, typically ErrClosed.
func (g *waitGroup) abort(err error) {
	g.completeAll(err)
}

func (g *waitGroup) completeAll(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for !g.waiters.Empty() {
		w := g.waiters.Get()
		w.complete(err)
		g.pool.Put(w)
	}
}
