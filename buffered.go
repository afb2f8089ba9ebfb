package gochannels

import (
	"context"
	"sync"

	"github.com/ygrebnov/gochannels/metrics"
	"github.com/ygrebnov/gochannels/storage"
)

// BufferedChannel is a storage.Storage-backed queue. A negative MaxSize is
// unbounded; zero degenerates to the same synchronous hand-off semantics as
// UnicastChannel, since a zero-capacity buffer can never actually hold
// anything between a commit and the next read.
type BufferedChannel[M any] struct {
	maxSize int

	// zero is non-nil only when maxSize == 0, delegating the entire
	// protocol to the same rendezvous core UnicastChannel uses — a
	// zero-capacity buffer has nowhere to put a message between CommitSend
	// and CommitReceive, so it cannot be implemented via storage at all.
	zero *rendezvous[M]

	mu        sync.Mutex
	gate      closeGate
	senders   *waitGroup
	receivers *waitGroup
	storage   storage.Storage[M]
	ins       *instruments
}

// BufferedOption configures a BufferedChannel at construction.
type BufferedOption[M any] func(*bufferedConfig[M])

type bufferedConfig[M any] struct {
	maxSize int
	storage storage.Storage[M]
	metrics metrics.Provider
}

// WithMaxSize bounds the channel to n messages. Negative means unbounded
// (the default); zero means every send must be picked up by an already
// parked receiver, exactly like UnicastChannel.
func WithMaxSize[M any](n int) BufferedOption[M] {
	return func(c *bufferedConfig[M]) { c.maxSize = n }
}

// WithStorage overrides the backing storage.Storage discipline, e.g. to get
// LIFO or priority ordering instead of the default FIFO. It is ignored when
// the effective MaxSize is zero, since that mode never touches storage.
func WithStorage[M any](s storage.Storage[M]) BufferedOption[M] {
	return func(c *bufferedConfig[M]) { c.storage = s }
}

// WithBufferedMetrics attaches a metrics.Provider to a BufferedChannel.
func WithBufferedMetrics[M any](p metrics.Provider) BufferedOption[M] {
	return func(c *bufferedConfig[M]) { c.metrics = p }
}

// NewBuffered constructs a buffered channel. With no options it is an
// unbounded FIFO queue.
func NewBuffered[M any](opts ...BufferedOption[M]) *BufferedChannel[M] {
	cfg := &bufferedConfig[M]{maxSize: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	ins := newInstruments("buffered", cfg.metrics)
	if cfg.maxSize == 0 {
		return &BufferedChannel[M]{maxSize: 0, zero: newRendezvous[M](false), ins: ins}
	}
	s := cfg.storage
	if s == nil {
		s = storage.NewFIFO[M]()
	}
	return &BufferedChannel[M]{
		maxSize:   cfg.maxSize,
		senders:   newWaitGroup(),
		receivers: newWaitGroup(),
		storage:   s,
		ins:       ins,
	}
}

func (c *BufferedChannel[M]) readyToSend() (bool, error) {
	if c.zero != nil {
		return c.zero.readyToSend()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.gate.guardSend(); err != nil {
		return false, err
	}
	return c.maxSize < 0 || c.storage.Len() < c.maxSize, nil
}

func (c *BufferedChannel[M]) waitSend(ctx context.Context) error {
	fn := func() error {
		if c.zero != nil {
			return c.zero.waitSend(ctx)
		}
		return c.senders.wait(ctx, nil)
	}
	return c.ins.trackWait(fn)
}

func (c *BufferedChannel[M]) retractSend() {
	if c.zero != nil {
		c.zero.retractSend()
		return
	}
	c.senders.wakeNext()
}

func (c *BufferedChannel[M]) readyToReceive() (bool, error) {
	if c.zero != nil {
		return c.zero.readyToReceive()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.guardReceive(!c.storage.Empty())
}

func (c *BufferedChannel[M]) waitReceive(ctx context.Context) error {
	fn := func() error {
		if c.zero != nil {
			return c.zero.waitReceive(ctx)
		}
		return c.receivers.wait(ctx, nil)
	}
	return c.ins.trackWait(fn)
}

func (c *BufferedChannel[M]) retractReceive() {
	if c.zero != nil {
		c.zero.retractReceive()
		return
	}
	c.receivers.wakeNext()
}

// ReadyToSend reports whether Send would currently commit without parking.
func (c *BufferedChannel[M]) ReadyToSend() (bool, error) { return c.readyToSend() }

// WaitSend suspends until capacity or a receiver may be available.
func (c *BufferedChannel[M]) WaitSend(ctx context.Context) error { return c.waitSend(ctx) }

// CommitSend enqueues m, or for a zero-capacity channel hands it directly to
// the receiver that made this send ready.
func (c *BufferedChannel[M]) CommitSend(m M) error {
	if c.zero != nil {
		if err := c.zero.commitSend(m); err != nil {
			return err
		}
		c.ins.sends.Add(1)
		return nil
	}
	c.mu.Lock()
	if err := c.gate.guardSend(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.maxSize >= 0 && c.storage.Len() >= c.maxSize {
		c.mu.Unlock()
		return errLostRace
	}
	c.storage.Put(m)
	c.mu.Unlock()
	c.receivers.wakeNext()
	c.ins.sends.Add(1)
	return nil
}

// RetractSend is called when WaitSend returned but the caller will not
// follow through with a commit.
func (c *BufferedChannel[M]) RetractSend() { c.retractSend() }

// ReadyToReceive reports whether Receive would currently commit.
func (c *BufferedChannel[M]) ReadyToReceive() (bool, error) { return c.readyToReceive() }

// WaitReceive suspends until a message may be available.
func (c *BufferedChannel[M]) WaitReceive(ctx context.Context) error { return c.waitReceive(ctx) }

// CommitReceive dequeues the next message, or for a zero-capacity channel
// takes the message staged by the paired sender.
func (c *BufferedChannel[M]) CommitReceive() (M, error) {
	var zero M
	if c.zero != nil {
		m, err := c.zero.commitReceive()
		if err != nil {
			return zero, err
		}
		c.ins.receives.Add(1)
		return m, nil
	}
	c.mu.Lock()
	ready, err := c.gate.guardReceive(!c.storage.Empty())
	if err != nil {
		c.mu.Unlock()
		return zero, err
	}
	if !ready {
		c.mu.Unlock()
		return zero, errLostRace
	}
	m := c.storage.Get()
	empty := c.storage.Empty()
	closedNow := c.gate.isClosed()
	c.mu.Unlock()
	c.senders.wakeNext()
	if closedNow && empty {
		c.receivers.abort(ErrClosed)
	}
	c.ins.receives.Add(1)
	return m, nil
}

// RetractReceive is called when WaitReceive returned but the caller will
// not follow through with a commit.
func (c *BufferedChannel[M]) RetractReceive() { c.retractReceive() }

// Send parks until there is room, then enqueues m.
func (c *BufferedChannel[M]) Send(ctx context.Context, m M) error { return sendLoop(ctx, c, m) }

// Receive parks until a message is available, then dequeues it.
func (c *BufferedChannel[M]) Receive(ctx context.Context) (M, error) { return receiveLoop(ctx, c) }

// SendNoWait attempts a single, non-parking send.
func (c *BufferedChannel[M]) SendNoWait(m M) error { return sendNoWait[M](c, m) }

// ReceiveNoWait attempts a single, non-parking receive.
func (c *BufferedChannel[M]) ReceiveNoWait() (M, error) { return receiveNoWait[M](c) }

// Close closes the channel. Parked senders are aborted immediately; parked
// receivers are aborted immediately only if the buffer is currently empty,
// otherwise once the last message is drained.
func (c *BufferedChannel[M]) Close() {
	if c.zero != nil {
		c.zero.close()
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gate.close(!c.storage.Empty(), c.senders.abort, c.receivers.abort)
}

// Closed reports whether Close has already run.
func (c *BufferedChannel[M]) Closed() bool {
	if c.zero != nil {
		return c.zero.isClosed()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.isClosed()
}

// Len reports how many messages are currently buffered. It is always 0 for
// a zero-capacity channel, which never holds a message outside a commit.
func (c *BufferedChannel[M]) Len() int {
	if c.zero != nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.Len()
}
