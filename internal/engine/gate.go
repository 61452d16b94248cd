package engine

import (
	"context"
	"sync"
)

// gate is a one-shot readiness signal: closed exactly once, never
// reopened. The first LoadTable for a (table, prefix) pair creates the
// gate and opens it when the adjustment pass settles; concurrent and
// later callers wait on the same gate instead of re-triggering the
// scan.
type gate struct {
	once sync.Once
	ch   chan struct{}
}

func newGate() *gate {
	return &gate{ch: make(chan struct{})}
}

// open flips the signal. Idempotent.
func (g *gate) open() {
	g.once.Do(func() { close(g.ch) })
}

// Wait blocks until the gate opens or ctx is done.
func (g *gate) Wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
