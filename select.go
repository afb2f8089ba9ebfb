package gochannels

import (
	"context"
	"errors"
	"math/rand/v2"
)

// selectOutcome is delivered by an auxiliary wait goroutine once its Pair's
// WaitSend/WaitReceive returns.
type selectOutcome struct {
	idx int
	err error
}

func shuffledIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rand.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}

// scanReady runs one fast-path pass over order, returning the index of the
// first ready-and-successfully-committed pair. A pair whose probe succeeds
// but whose commit then loses a race to a concurrent operation is treated
// as not-ready-this-pass rather than an error, mirroring sendLoop/
// receiveLoop's own retry-on-errLostRace behavior.
func scanReady(pairs []Pair, order []int) (idx int, value any, deadErr error, liveFound bool) {
	for _, i := range order {
		ready, err := pairs[i].ready()
		if err != nil {
			if deadErr == nil {
				deadErr = err
			}
			continue
		}
		liveFound = true
		if !ready {
			continue
		}
		v, err := pairs[i].commit()
		if err != nil {
			if errors.Is(err, errLostRace) {
				continue
			}
			if deadErr == nil {
				deadErr = err
			}
			continue
		}
		return i, v, nil, true
	}
	return -1, nil, deadErr, liveFound
}

// selectIndex is the shared engine behind Select and SelectReceive. It
// returns the winning Pair's index into pairs and the value a receive
// committed (nil for a send).
func selectIndex(ctx context.Context, pairs []Pair) (int, any, error) {
	if len(pairs) == 0 {
		misuse("Select: no pairs given")
	}

	idx, value, deadErr, liveFound := scanReady(pairs, shuffledIndices(len(pairs)))
	if idx >= 0 {
		return idx, value, nil
	}
	if !liveFound {
		// Every candidate is permanently dead (e.g. every channel closed):
		// ErrClosed escapes only once there is no live alternative left.
		return -1, nil, deadErr
	}

	outcomes := make(chan selectOutcome, len(pairs))
	cancels := make(map[int]context.CancelFunc, len(pairs))
	live := make(map[int]bool, len(pairs))

	spawn := func(i int) {
		cctx, cancel := context.WithCancel(ctx)
		cancels[i] = cancel
		live[i] = true
		go func() {
			err := pairs[i].wait(cctx)
			outcomes <- selectOutcome{idx: i, err: err}
		}()
	}
	lastDeadErr := deadErr
	for i := range pairs {
		if _, err := pairs[i].ready(); err == nil {
			spawn(i)
		} else {
			lastDeadErr = err
		}
	}

	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	if len(live) == 0 {
		if lastDeadErr == nil {
			lastDeadErr = ErrClosed
		}
		return -1, nil, lastDeadErr
	}
	for len(live) > 0 {
		select {
		case <-ctx.Done():
			return -1, nil, ctx.Err()
		case oc := <-outcomes:
			if !live[oc.idx] {
				continue
			}
			if oc.err != nil {
				if errors.Is(oc.err, context.Canceled) && ctx.Err() == nil {
					// This auxiliary was cancelled by us, not by the
					// caller's context — a loser from an earlier round
					// that we've already accounted for.
					continue
				}
				delete(live, oc.idx)
				lastDeadErr = oc.err
				continue
			}
			// Real wakeup: retract unconditionally, then re-probe. A
			// retract is owed whether or not this pair goes on to win,
			// since WaitSend/WaitReceive is documented to have consumed a
			// real wakeup the caller must account for.
			pairs[oc.idx].retract()
			ready, err := pairs[oc.idx].ready()
			if err != nil {
				delete(live, oc.idx)
				lastDeadErr = err
				continue
			}
			if !ready {
				spawn(oc.idx)
				continue
			}
			v, err := pairs[oc.idx].commit()
			if err != nil {
				if errors.Is(err, errLostRace) {
					spawn(oc.idx)
					continue
				}
				delete(live, oc.idx)
				lastDeadErr = err
				continue
			}
			for j := range live {
				if j != oc.idx {
					cancels[j]()
				}
			}
			return oc.idx, v, nil
		}
	}
	return -1, nil, lastDeadErr
}

// Select blocks until exactly one of pairs commits, returning the winning
// Pair and, for a receive, the value it committed (nil for a send). Ties
// among simultaneously ready pairs are broken uniformly at random.
func Select(ctx context.Context, pairs ...Pair) (Pair, any, error) {
	idx, value, err := selectIndex(ctx, pairs)
	if err != nil {
		return Pair{}, nil, err
	}
	return pairs[idx], value, nil
}

// SelectNoWait attempts a single, non-parking pass over pairs. If keepOrder
// is false, candidates are tried in random order; otherwise in the order
// given. It reports false if none of pairs committed.
func SelectNoWait(keepOrder bool, pairs ...Pair) (Pair, any, bool) {
	if len(pairs) == 0 {
		misuse("SelectNoWait: no pairs given")
	}
	order := shuffledIndices(len(pairs))
	if keepOrder {
		for i := range order {
			order[i] = i
		}
	}
	idx, value, _, _ := scanReady(pairs, order)
	if idx < 0 {
		return Pair{}, nil, false
	}
	return pairs[idx], value, true
}

// SelectReceiveOption configures SelectReceive.
type SelectReceiveOption[M any] func(*selectReceiveConfig[M])

type selectReceiveConfig[M any] struct {
	hasDefault bool
	def        M
}

// WithDefault makes SelectReceive return def immediately, without parking,
// when no channel is currently ready — replacing the original design's
// NoDefault sentinel with an explicit option.
func WithDefault[M any](def M) SelectReceiveOption[M] {
	return func(c *selectReceiveConfig[M]) {
		c.hasDefault = true
		c.def = def
	}
}

// SelectReceive receives from whichever of chans becomes ready first. With
// WithDefault set, it never parks: it returns the default as soon as a
// single non-parking pass finds nothing ready.
func SelectReceive[M any](ctx context.Context, chans []RecvCap[M], opts ...SelectReceiveOption[M]) (RecvCap[M], M, error) {
	if len(chans) == 0 {
		misuse("SelectReceive: no channels given")
	}
	cfg := &selectReceiveConfig[M]{}
	for _, opt := range opts {
		opt(cfg)
	}
	pairs := make([]Pair, len(chans))
	for i, ch := range chans {
		pairs[i] = Recv[M](ch)
	}

	var zero M
	if cfg.hasDefault {
		order := shuffledIndices(len(pairs))
		idx, value, _, _ := scanReady(pairs, order)
		if idx < 0 {
			return nil, cfg.def, nil
		}
		return chans[idx], value.(M), nil
	}

	idx, value, err := selectIndex(ctx, pairs)
	if err != nil {
		return nil, zero, err
	}
	return chans[idx], value.(M), nil
}
