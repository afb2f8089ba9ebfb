package gochannels

import (
	"errors"
	"fmt"
)

// Namespace prefixes every error message this package produces, the same
// way the worker-pool library prefixes its own sentinel errors.
const Namespace = "gochannels"

// ChannelError is the root of the package's error taxonomy. Both ClosedError
// and NotReadyError implement it, so callers can branch on the taxonomy
// without a type switch over the concrete types.
type ChannelError interface {
	error
	channelError()
}

// ClosedError indicates the channel has been closed. Use errors.Is(err,
// ErrClosed) to test for it — ClosedError's Is method matches any
// *ClosedError regardless of instance, mirroring the Python original's
// isinstance(exc, ChannelClosed) checks.
type ClosedError struct{}

// ErrClosed is the canonical ClosedError value returned by closed channels.
var ErrClosed error = &ClosedError{}

func (*ClosedError) Error() string { return Namespace + ": channel closed" }
func (*ClosedError) channelError() {}

// Is reports whether target is a *ClosedError, regardless of instance.
func (*ClosedError) Is(target error) bool {
	_, ok := target.(*ClosedError)
	return ok
}

// NotReadyError is returned by the nowait family of operations when the
// channel was not immediately ready. It carries the attempted Operation for
// diagnosis.
type NotReadyError struct {
	Op Operation
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: channel not ready for %s", Namespace, e.Op)
}

func (e *NotReadyError) channelError() {}

// Is reports whether target is a *NotReadyError for the same Operation.
func (e *NotReadyError) Is(target error) bool {
	other, ok := target.(*NotReadyError)
	return ok && other.Op == e.Op
}

// errLostRace is returned internally by a commit method when the state a
// preceding probe observed no longer holds by the time the commit runs. It
// never escapes the package: sendLoop and receiveLoop retry on it, and the
// nowait variants translate it into NotReadyError.
var errLostRace = errors.New(Namespace + ": lost race to commit")

// misuse panics to surface a programmer error (a nil channel passed to Send
// or Recv, an empty Select, more than one initial value for NewDefault):
// these are contract violations, not recoverable runtime conditions. A
// second Close is not misuse (it is a no-op), and a commit whose probe no
// longer holds returns errLostRace instead of panicking.
func misuse(format string, args ...any) {
	panic(Namespace + ": misuse: " + fmt.Sprintf(format, args...))
}
