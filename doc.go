// Package gochannels provides cooperative-concurrency channels — rendezvous
// and buffered message-passing primitives — together with a multi-way
// Select operator that waits for the first of several send/receive
// operations to become ready.
//
// # Channel variants
//
// Four constructors cover the send/receive rendezvous spectrum:
//   - NewUnicast: synchronous hand-off, one parked receiver wakes per send.
//   - NewBroadcast: synchronous hand-off, all parked receivers wake per
//     send, but only one wins the race to actually receive the message.
//   - NewDefault: a latched broadcast that always accepts a send and
//     delivers its last value to receivers without consuming it.
//   - NewBuffered: a storage.Storage-backed queue, optionally bounded,
//     degenerating to rendezvous semantics when its capacity is zero.
//
// # Select
//
// Select, SelectNoWait, and SelectReceive compose Send/Recv pairs drawn from
// multiple channels and resolve to whichever operation becomes committable
// first, applying a fairness shuffle across equally ready candidates.
//
// # Defaults
//
// Unless overridden via options, NewBuffered uses an unbounded FIFO
// storage.Storage and metrics.NewNoopProvider() for instrumentation.
//
// # Concurrency
//
// Every exported type is safe for concurrent use from multiple goroutines:
// a per-channel mutex stands in for the single cooperative scheduler thread
// the originating design assumed. Suspension points (Send, Receive, and
// Select's internal race loop) accept a context.Context so a caller can
// bound how long it is willing to park.
package gochannels
