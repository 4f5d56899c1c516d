package report

import "sync/atomic"

// gate is a one-shot latch. Concurrent and repeated firing is expected:
// only the caller that wins the pending->fired transition gets true and
// is the one allowed to emit the corresponding notification. A plain
// read-then-write here would double-fire under racing callers.
type gate struct {
	fired atomic.Bool
}

// fire attempts the transition and reports whether this caller won it.
func (g *gate) fire() bool {
	return g.fired.CompareAndSwap(false, true)
}

// done reports whether the gate has fired.
func (g *gate) done() bool {
	return g.fired.Load()
}
