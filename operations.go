package gochannels

import "context"

// Operation names which capability — send or receive — a Pair attempts.
type Operation int

const (
	// OpSend attempts the send capability of a channel.
	OpSend Operation = iota
	// OpRecv attempts the receive capability of a channel.
	OpRecv
)

func (o Operation) String() string {
	switch o {
	case OpSend:
		return "send"
	case OpRecv:
		return "recv"
	default:
		return "unknown"
	}
}

// Pair couples a channel with the operation Select should attempt against
// it and, for a send, the value to send. Construct one with Send or Recv;
// Pair's zero value is not valid. commit is type-erased because a single
// Select call mixes Pairs built over different message types M — the
// caller, which does know each M, type-asserts the value Select returns.
type Pair struct {
	op      Operation
	sendCap sendCapability
	recvCap recvCapability
	commit  func() (any, error)
}

// Op returns the operation this Pair attempts.
func (p Pair) Op() Operation { return p.op }

// Send builds a Pair that, if selected, sends m on ch.
func Send[M any](ch SendCap[M], m M) Pair {
	if ch == nil {
		misuse("Send: nil channel")
	}
	return Pair{
		op:      OpSend,
		sendCap: ch,
		commit:  func() (any, error) { return nil, ch.CommitSend(m) },
	}
}

// Recv builds a Pair that, if selected, receives from ch. The value Select
// returns should be type-asserted back to M by the caller.
func Recv[M any](ch RecvCap[M]) Pair {
	if ch == nil {
		misuse("Recv: nil channel")
	}
	return Pair{
		op:      OpRecv,
		recvCap: ch,
		commit:  func() (any, error) { return ch.CommitReceive() },
	}
}

func (p Pair) ready() (bool, error) {
	if p.op == OpSend {
		return p.sendCap.readyToSend()
	}
	return p.recvCap.readyToReceive()
}

func (p Pair) retract() {
	if p.op == OpSend {
		p.sendCap.retractSend()
	} else {
		p.recvCap.retractReceive()
	}
}

func (p Pair) wait(ctx context.Context) error {
	if p.op == OpSend {
		return p.sendCap.waitSend(ctx)
	}
	return p.recvCap.waitReceive(ctx)
}
