package engine

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tablesync/internal/cache"
	"github.com/roach88/tablesync/internal/store"
)

// openTestStore opens a store at path with the given collections at
// version 1. Kept separate from newTestStore so restart tests can
// reopen the same file.
func openTestStore(t *testing.T, path string, tables ...string) *store.Store {
	t.Helper()
	s, err := store.Open(path, store.Config{Version: 1, Tables: tables})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestStore(t *testing.T, tables ...string) *store.Store {
	t.Helper()
	return openTestStore(t, filepath.Join(t.TempDir(), "sync.db"), tables...)
}

// fakePending is an awaitable value for adjustment tests: counts Await
// calls and optionally delays resolution so tests can overlap loads.
type fakePending struct {
	mu     sync.Mutex
	awaits int
	value  any
	delay  time.Duration
}

func (p *fakePending) Await(ctx context.Context) (any, error) {
	p.mu.Lock()
	p.awaits++
	p.mu.Unlock()
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.value, nil
}

func (p *fakePending) awaitCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.awaits
}

// fakePreloader serves a fixed snapshot, or an error.
type fakePreloader struct {
	snap *cache.Snapshot
	err  error
}

func (p *fakePreloader) Snapshot(ctx context.Context) (*cache.Snapshot, error) {
	return p.snap, p.err
}
