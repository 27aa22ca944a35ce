package service

import (
	"context"
	"sync"
)

// snapshotter is implemented by the in-memory stores: Snapshot captures a
// deep copy of state, Restore rewinds to it. Used only by InMemoryStoreTx.
type snapshotter interface {
	Snapshot() any
	Restore(any)
}

// InMemoryStoreTx simulates a database transaction over the in-memory
// stores: it serializes writers with a coarse lock, snapshots each store on
// entry, and restores the snapshots when the callback fails. That gives unit
// tests the same all-or-nothing semantics the postgres runner provides.
type InMemoryStoreTx struct {
	mu     sync.Mutex
	stores Stores
}

func NewInMemoryStoreTx(stores Stores) *InMemoryStoreTx {
	return &InMemoryStoreTx{stores: stores}
}

func (t *InMemoryStoreTx) RunInTx(ctx context.Context, fn func(txCtx context.Context, stores Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	type taken struct {
		store snapshotter
		snap  any
	}
	var snapshots []taken
	for _, s := range []any{t.stores.Tenants, t.stores.Children, t.stores.Documents} {
		if snap, ok := s.(snapshotter); ok {
			snapshots = append(snapshots, taken{store: snap, snap: snap.Snapshot()})
		}
	}

	if err := fn(ctx, t.stores); err != nil {
		for _, s := range snapshots {
			s.store.Restore(s.snap)
		}
		return err
	}
	return nil
}
