package gochannels

import (
	"context"
	"sync"

	"github.com/ygrebnov/gochannels/metrics"
)

// rendezvous is the zero-buffer handoff core shared by Unicast, Broadcast,
// and a Buffered channel built with WithMaxSize(0). A send only succeeds
// once a receiver is already parked waiting for it; the message passes
// through a single transient slot rather than persistent storage, so no
// message is ever held by the channel when nobody is there to take it.
//
// Whichever side arrives second always discovers the side already parked:
// both waitSend and waitReceive nudge the opposite waitGroup immediately
// after joining their own, under that group's own mutex. Whichever side
// joins first finds the opposite queue empty and its nudge is a no-op; it is
// woken later by the second side's nudge instead. This ordering is what
// makes the handoff race-free without a single lock spanning both queues.
type rendezvous[M any] struct {
	mu        sync.Mutex
	gate      closeGate
	senders   *waitGroup
	receivers *waitGroup
	slot      optMsg[M]
	broadcast bool
}

func newRendezvous[M any](broadcast bool) *rendezvous[M] {
	return &rendezvous[M]{
		senders:   newWaitGroup(),
		receivers: newWaitGroup(),
		broadcast: broadcast,
	}
}

func (r *rendezvous[M]) readyToSend() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate.guardSend(); err != nil {
		return false, err
	}
	return !r.slot.ok && r.receivers.len() > 0, nil
}

func (r *rendezvous[M]) waitSend(ctx context.Context) error {
	return r.senders.wait(ctx, func() {
		if r.receivers.len() > 0 {
			r.receivers.wakeNext()
		}
	})
}

func (r *rendezvous[M]) commitSend(m M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.gate.guardSend(); err != nil {
		return err
	}
	if r.slot.ok || r.receivers.len() == 0 {
		return errLostRace
	}
	r.slot = optMsg[M]{msg: m, ok: true}
	if r.broadcast {
		r.receivers.wakeAll()
	} else {
		r.receivers.wakeNext()
	}
	return nil
}

func (r *rendezvous[M]) retractSend() {
	r.senders.wakeNext()
}

func (r *rendezvous[M]) readyToReceive() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gate.guardReceive(r.slot.ok)
}

func (r *rendezvous[M]) waitReceive(ctx context.Context) error {
	return r.receivers.wait(ctx, func() {
		if r.senders.len() > 0 {
			r.senders.wakeNext()
		}
	})
}

func (r *rendezvous[M]) commitReceive() (M, error) {
	r.mu.Lock()
	var zero M
	ready, err := r.gate.guardReceive(r.slot.ok)
	if err != nil {
		r.mu.Unlock()
		return zero, err
	}
	if !ready {
		r.mu.Unlock()
		return zero, errLostRace
	}
	m := r.slot.msg
	r.slot = optMsg[M]{}
	closedNow := r.gate.isClosed()
	r.mu.Unlock()
	if closedNow {
		// The channel closed while this message was still in flight; now
		// that it has been drained, nothing can ever be delivered again.
		r.receivers.abort(ErrClosed)
	}
	return m, nil
}

func (r *rendezvous[M]) retractReceive() {
	r.receivers.wakeNext()
}

// close marks the channel closed, aborting parked senders immediately and
// parked receivers immediately only if no message is currently staged.
func (r *rendezvous[M]) close() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gate.close(r.slot.ok, r.senders.abort, r.receivers.abort)
}

func (r *rendezvous[M]) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gate.isClosed()
}

// rendezvousChannel adapts a rendezvous core to the SendCap/RecvCap
// protocol and the composite Send/Receive operations, instrumented via
// metrics. UnicastChannel and BroadcastChannel are both thin aliases over
// this type, differing only in the core's broadcast flag and metric names.
type rendezvousChannel[M any] struct {
	core *rendezvous[M]
	ins  *instruments
}

func newRendezvousChannel[M any](kind string, broadcast bool, p metrics.Provider) *rendezvousChannel[M] {
	return &rendezvousChannel[M]{
		core: newRendezvous[M](broadcast),
		ins:  newInstruments(kind, p),
	}
}

func (c *rendezvousChannel[M]) readyToSend() (bool, error) { return c.core.readyToSend() }

func (c *rendezvousChannel[M]) waitSend(ctx context.Context) error {
	return c.ins.trackWait(func() error { return c.core.waitSend(ctx) })
}

func (c *rendezvousChannel[M]) retractSend() { c.core.retractSend() }

func (c *rendezvousChannel[M]) readyToReceive() (bool, error) { return c.core.readyToReceive() }

func (c *rendezvousChannel[M]) waitReceive(ctx context.Context) error {
	return c.ins.trackWait(func() error { return c.core.waitReceive(ctx) })
}

func (c *rendezvousChannel[M]) retractReceive() { c.core.retractReceive() }

// ReadyToSend reports whether Send would currently commit without parking.
func (c *rendezvousChannel[M]) ReadyToSend() (bool, error) { return c.readyToSend() }

// WaitSend suspends until a receiver may be present to pair with.
func (c *rendezvousChannel[M]) WaitSend(ctx context.Context) error { return c.waitSend(ctx) }

// CommitSend hands m directly to the receiver(s) that made this send ready.
func (c *rendezvousChannel[M]) CommitSend(m M) error {
	if err := c.core.commitSend(m); err != nil {
		return err
	}
	c.ins.sends.Add(1)
	return nil
}

// RetractSend is called when WaitSend returned but the caller will not
// follow through with a commit; it passes the wakeup to the next sender.
func (c *rendezvousChannel[M]) RetractSend() { c.retractSend() }

// ReadyToReceive reports whether Receive would currently commit.
func (c *rendezvousChannel[M]) ReadyToReceive() (bool, error) { return c.readyToReceive() }

// WaitReceive suspends until a sender may be present.
func (c *rendezvousChannel[M]) WaitReceive(ctx context.Context) error { return c.waitReceive(ctx) }

// CommitReceive takes the message staged by the paired sender.
func (c *rendezvousChannel[M]) CommitReceive() (M, error) {
	m, err := c.core.commitReceive()
	if err != nil {
		return m, err
	}
	c.ins.receives.Add(1)
	return m, nil
}

// RetractReceive is called when WaitReceive returned but the caller will not
// follow through with a commit.
func (c *rendezvousChannel[M]) RetractReceive() { c.retractReceive() }

// Send parks until a receiver is ready, then hands m to it.
func (c *rendezvousChannel[M]) Send(ctx context.Context, m M) error { return sendLoop(ctx, c, m) }

// Receive parks until a sender is ready, then takes its message.
func (c *rendezvousChannel[M]) Receive(ctx context.Context) (M, error) { return receiveLoop(ctx, c) }

// SendNoWait attempts a single, non-parking send.
func (c *rendezvousChannel[M]) SendNoWait(m M) error { return sendNoWait[M](c, m) }

// ReceiveNoWait attempts a single, non-parking receive.
func (c *rendezvousChannel[M]) ReceiveNoWait() (M, error) { return receiveNoWait[M](c) }

// Close closes the channel. A second call is a no-op.
func (c *rendezvousChannel[M]) Close() { c.core.close() }

// Closed reports whether Close has already run.
func (c *rendezvousChannel[M]) Closed() bool { return c.core.isClosed() }
