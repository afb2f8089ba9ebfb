package gochannels

import (
	"context"
	"iter"
)

// Next receives the next message from c, the lower-level building block
// behind All. It returns ErrClosed once the channel is exhausted, exactly
// as Receive does.
func Next[M any](ctx context.Context, c RecvCap[M]) (M, error) {
	return receiveLoop(ctx, c)
}

// All adapts c into an iter.Seq so it can be ranged over directly. The
// sequence simply ends, without surfacing an error, whenever Receive
// returns one — whether that's ErrClosed, context cancellation, or
// anything else. Callers that need to distinguish those should use Next
// directly instead.
func All[M any](ctx context.Context, c RecvCap[M]) iter.Seq[M] {
	return func(yield func(M) bool) {
		for {
			m, err := Next(ctx, c)
			if err != nil {
				return
			}
			if !yield(m) {
				return
			}
		}
	}
}
