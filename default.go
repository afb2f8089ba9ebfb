package gochannels

import (
	"context"
	"sync"
)

// DefaultChannel is a latched broadcast: it always accepts a send and
// thereafter delivers its last value to every receiver without consuming
// it. A receiver that arrives before any value has ever been sent parks
// until the first one lands.
type DefaultChannel[M any] struct {
	mu        sync.Mutex
	gate      closeGate
	receivers *waitGroup
	slot      optMsg[M]
	ins       *instruments
}

// NewDefault constructs a latched broadcast channel. initial may carry at
// most one value, seeding the latch so the first receive does not park;
// passing more than one is a programmer error.
func NewDefault[M any](initial ...M) *DefaultChannel[M] {
	if len(initial) > 1 {
		misuse("NewDefault: at most one initial value, got %d", len(initial))
	}
	c := &DefaultChannel[M]{
		receivers: newWaitGroup(),
		ins:       newInstruments("default", nil),
	}
	if len(initial) == 1 {
		c.slot = optMsg[M]{msg: initial[0], ok: true}
	}
	return c
}

func (c *DefaultChannel[M]) readyToSend() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.gate.guardSend(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DefaultChannel[M]) waitSend(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.guardSend()
}

func (c *DefaultChannel[M]) retractSend() {}

func (c *DefaultChannel[M]) readyToReceive() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.guardReceive(c.slot.ok)
}

func (c *DefaultChannel[M]) waitReceive(ctx context.Context) error {
	return c.receivers.wait(ctx, nil)
}

func (c *DefaultChannel[M]) retractReceive() { c.receivers.wakeNext() }

// ReadyToSend always reports true on an open channel: a send never needs to
// park.
func (c *DefaultChannel[M]) ReadyToSend() (bool, error) { return c.readyToSend() }

// WaitSend never actually parks in correct use, since ReadyToSend is never
// false on an open channel.
func (c *DefaultChannel[M]) WaitSend(ctx context.Context) error { return c.waitSend(ctx) }

// CommitSend latches m as the channel's current value and wakes every
// parked receiver.
func (c *DefaultChannel[M]) CommitSend(m M) error {
	c.mu.Lock()
	if err := c.gate.guardSend(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.slot = optMsg[M]{msg: m, ok: true}
	c.mu.Unlock()
	c.receivers.wakeAll()
	c.ins.sends.Add(1)
	return nil
}

// RetractSend is a no-op: Send never parks, so there is nothing to retract.
func (c *DefaultChannel[M]) RetractSend() {}

// ReadyToReceive reports whether a value has ever been latched.
func (c *DefaultChannel[M]) ReadyToReceive() (bool, error) { return c.readyToReceive() }

// WaitReceive suspends until the first value is latched.
func (c *DefaultChannel[M]) WaitReceive(ctx context.Context) error {
	return c.ins.trackWait(func() error { return c.waitReceive(ctx) })
}

// CommitReceive returns the latched value without consuming it: later
// receives keep observing it until a new send overwrites it.
func (c *DefaultChannel[M]) CommitReceive() (M, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ready, err := c.gate.guardReceive(c.slot.ok)
	var zero M
	if err != nil {
		return zero, err
	}
	if !ready {
		return zero, errLostRace
	}
	c.ins.receives.Add(1)
	return c.slot.msg, nil
}

// RetractReceive is called when WaitReceive returned but the caller will
// not follow through with a commit.
func (c *DefaultChannel[M]) RetractReceive() { c.retractReceive() }

// Send latches m, always succeeding on an open channel.
func (c *DefaultChannel[M]) Send(ctx context.Context, m M) error { return sendLoop(ctx, c, m) }

// Receive returns the latched value, parking if none has ever been sent.
func (c *DefaultChannel[M]) Receive(ctx context.Context) (M, error) { return receiveLoop(ctx, c) }

// SendNoWait latches m, always succeeding on an open channel.
func (c *DefaultChannel[M]) SendNoWait(m M) error { return sendNoWait[M](c, m) }

// ReceiveNoWait returns the latched value if one exists.
func (c *DefaultChannel[M]) ReceiveNoWait() (M, error) { return receiveNoWait[M](c) }

// Close closes the channel. Parked receivers are aborted only if no value
// has ever been latched — once latched, the value remains forever
// deliverable, close or not, by design: a reader that only cares about the
// latest configuration value should not have to race a close against its
// read of it.
func (c *DefaultChannel[M]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gate.close(c.slot.ok, func(error) {}, c.receivers.abort)
}

// Closed reports whether Close has already run.
func (c *DefaultChannel[M]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.isClosed()
}
