package gochannels

import "github.com/ygrebnov/gochannels/metrics"

// UnicastChannel is a synchronous hand-off channel: a send only completes
// once a parked receiver is there to take it, and exactly one receiver wakes
// per send.
type UnicastChannel[M any] struct {
	*rendezvousChannel[M]
}

// UnicastOption configures a UnicastChannel at construction.
type UnicastOption[M any] func(*unicastConfig)

type unicastConfig struct {
	metrics metrics.Provider
}

// WithUnicastMetrics attaches a metrics.Provider to a UnicastChannel.
func WithUnicastMetrics[M any](p metrics.Provider) UnicastOption[M] {
	return func(c *unicastConfig) { c.metrics = p }
}

// NewUnicast constructs a ready-to-use rendezvous channel.
func NewUnicast[M any](opts ...UnicastOption[M]) *UnicastChannel[M] {
	cfg := &unicastConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &UnicastChannel[M]{newRendezvousChannel[M]("unicast", false, cfg.metrics)}
}
