package gochannels

import (
	"context"
	"errors"
)

// sendCapability is the type-erased half of SendCap, letting Select dispatch
// across channels of different message types without needing a type
// parameter of its own. Select commits the winning operation itself, through
// the type-erased commit closure each Pair carries, and does not leave the
// commit to its caller; so this interface only needs the probe/wait/retract
// trio, never CommitSend.
type sendCapability interface {
	readyToSend() (bool, error)
	waitSend(ctx context.Context) error
	retractSend()
}

// recvCapability is the receive-side counterpart of sendCapability.
type recvCapability interface {
	readyToReceive() (bool, error)
	waitReceive(ctx context.Context) error
	retractReceive()
}

// SendCap is the send half of a channel's protocol: a pure readiness probe,
// a suspension point, a commit, and a no-op retraction. It is sealed (via
// the embedded sendCapability) to this package's channel variants.
type SendCap[M any] interface {
	sendCapability

	// ReadyToSend reports whether a send would currently succeed. It
	// returns ErrClosed if the channel is closed.
	ReadyToSend() (bool, error)

	// WaitSend suspends until readiness may have changed; it makes no
	// promise that it has.
	WaitSend(ctx context.Context) error

	// CommitSend transfers m. Preconditions: ReadyToSend() was true and no
	// intervening operation invalidated it.
	CommitSend(m M) error
}

// RecvCap is the receive half of a channel's protocol, symmetric to SendCap.
type RecvCap[M any] interface {
	recvCapability

	// ReadyToReceive reports whether a receive would currently succeed. It
	// returns ErrClosed if the channel is closed and no message remains
	// deliverable.
	ReadyToReceive() (bool, error)

	// WaitReceive suspends until readiness may have changed.
	WaitReceive(ctx context.Context) error

	// CommitReceive consumes and returns a message.
	CommitReceive() (M, error)
}

// sendLoop realizes the composite "send" operation shared by every channel
// variant: park until ready, then commit.
func sendLoop[M any](ctx context.Context, c SendCap[M], m M) error {
	for {
		ready, err := c.ReadyToSend()
		if err != nil {
			return err
		}
		if ready {
			// A probe that returns true is optimistic, not a promise: a
			// concurrent sender can still beat this one to CommitSend. On
			// that loss, re-probe and try again rather than surfacing it.
			if err := c.CommitSend(m); err != nil {
				if errors.Is(err, errLostRace) {
					continue
				}
				return err
			}
			return nil
		}
		if err := c.WaitSend(ctx); err != nil {
			return err
		}
	}
}

// receiveLoop realizes the composite "receive" operation shared by every
// channel variant.
func receiveLoop[M any](ctx context.Context, c RecvCap[M]) (M, error) {
	for {
		ready, err := c.ReadyToReceive()
		if err != nil {
			var zero M
			return zero, err
		}
		if ready {
			m, err := c.CommitReceive()
			if err != nil {
				if errors.Is(err, errLostRace) {
					continue
				}
				return m, err
			}
			return m, nil
		}
		if err := c.WaitReceive(ctx); err != nil {
			var zero M
			return zero, err
		}
	}
}

// sendNoWait realizes the single-attempt "send_nowait" composite operation.
func sendNoWait[M any](c SendCap[M], m M) error {
	ready, err := c.ReadyToSend()
	if err != nil {
		return err
	}
	if !ready {
		return &NotReadyError{Op: OpSend}
	}
	if err := c.CommitSend(m); err != nil {
		if errors.Is(err, errLostRace) {
			return &NotReadyError{Op: OpSend}
		}
		return err
	}
	return nil
}

// receiveNoWait realizes the single-attempt "receive_nowait" composite
// operation.
func receiveNoWait[M any](c RecvCap[M]) (M, error) {
	ready, err := c.ReadyToReceive()
	if err != nil {
		var zero M
		return zero, err
	}
	if !ready {
		var zero M
		return zero, &NotReadyError{Op: OpRecv}
	}
	m, err := c.CommitReceive()
	if err != nil {
		if errors.Is(err, errLostRace) {
			var zero M
			return zero, &NotReadyError{Op: OpRecv}
		}
		return m, err
	}
	return m, nil
}
