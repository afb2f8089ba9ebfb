// Package metrics defines the instrumentation surface channels report
// through: counters for committed sends/receives, an up/down counter for
// parked waiters, and a histogram for time spent parked. It is carried over
// unmodified from the worker-pool library this package's sibling channel
// types are descended from, since the instrumentation concern is domain
// agnostic. NoopProvider is the default; BasicProvider is a concurrency-safe
// in-memory implementation suitable for tests.
package metrics
