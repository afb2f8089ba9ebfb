package gochannels

import (
	"time"

	"github.com/ygrebnov/gochannels/metrics"
)

// instruments bundles the metrics a single channel reports through. Every
// variant constructs one from its metrics.Provider, defaulting to
// metrics.NewNoopProvider() when none is supplied; DefaultChannel has no
// option to supply one and always uses the no-op provider.
type instruments struct {
	sends    metrics.Counter
	receives metrics.Counter
	parked   metrics.UpDownCounter
	parkTime metrics.Histogram
}

func newInstruments(kind string, p metrics.Provider) *instruments {
	if p == nil {
		p = metrics.NewNoopProvider()
	}
	return &instruments{
		sends: p.Counter(
			kind+".sends.committed",
			metrics.WithDescription("messages committed via send"),
			metrics.WithUnit("1"),
		),
		receives: p.Counter(
			kind+".receives.committed",
			metrics.WithDescription("messages committed via receive"),
			metrics.WithUnit("1"),
		),
		parked: p.UpDownCounter(
			kind+".waiters.parked",
			metrics.WithDescription("goroutines currently parked on this channel"),
			metrics.WithUnit("1"),
		),
		parkTime: p.Histogram(
			kind+".wait.duration",
			metrics.WithDescription("time spent parked before a wait call returned"),
			metrics.WithUnit("s"),
		),
	}
}

// trackWait records a parked-waiter count and duration around fn, which is
// expected to be a single wait call on a waitGroup.
func (ins *instruments) trackWait(fn func() error) error {
	ins.parked.Add(1)
	start := time.Now()
	defer func() {
		ins.parked.Add(-1)
		ins.parkTime.Record(time.Since(start).Seconds())
	}()
	return fn()
}
