package gochannels

// optMsg is an optional message slot. It replaces a sentinel "no message"
// value: M's own zero value may be a perfectly valid message, so presence is
// tracked separately via ok rather than by comparison against zero.
type optMsg[M any] struct {
	msg M
	ok  bool
}
