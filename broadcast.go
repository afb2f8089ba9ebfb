package gochannels

import "github.com/ygrebnov/gochannels/metrics"

// BroadcastChannel is a synchronous hand-off channel like UnicastChannel,
// except every parked receiver wakes on each send; only one of them wins the
// race to actually commit the receive.
type BroadcastChannel[M any] struct {
	*rendezvousChannel[M]
}

// BroadcastOption configures a BroadcastChannel at construction.
type BroadcastOption[M any] func(*broadcastConfig)

type broadcastConfig struct {
	metrics metrics.Provider
}

// WithBroadcastMetrics attaches a metrics.Provider to a BroadcastChannel.
func WithBroadcastMetrics[M any](p metrics.Provider) BroadcastOption[M] {
	return func(c *broadcastConfig) { c.metrics = p }
}

// NewBroadcast constructs a ready-to-use broadcast rendezvous channel.
func NewBroadcast[M any](opts ...BroadcastOption[M]) *BroadcastChannel[M] {
	cfg := &broadcastConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &BroadcastChannel[M]{newRendezvousChannel[M]("broadcast", true, cfg.metrics)}
}
