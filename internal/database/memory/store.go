// Package memory is an in-process implementation of repository.Store used for
// development, tests and single-node deployments without PostgreSQL.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/repository"
)

// ErrTxClosed is returned when a finished transaction is used again
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

// Store keeps every registry in memory. Transactions are serialized: one
// writer at a time, with reads outside a transaction seeing only committed state.
type Store struct {
	mu        sync.RWMutex
	committed *state
	writer    chan struct{}
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		committed: newState(),
		writer:    make(chan struct{}, 1),
	}
}

var _ repository.Store = (*Store)(nil)

// BeginTx waits for the writer slot and starts a transaction
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.RLock()
	pending := newState()
	pending.lastAssetID = s.committed.lastAssetID
	pending.lastBattleID = s.committed.lastBattleID
	s.mu.RUnlock()

	return &Tx{view: view{base: s.committed, pending: pending}, store: s}, nil
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) read(fn func(v *view) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&view{base: s.committed})
}

func (s *Store) write(ctx context.Context, fn func(tx repository.Tx) error) error {
	return repository.RunInTx(ctx, s, fn)
}

// Tx is a pending set of writes over the committed state
type Tx struct {
	view
	store *Store
	done  bool
}

// Commit publishes the pending writes and releases the writer slot
func (t *Tx) Commit(context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	t.done = true

	t.store.mu.Lock()
	t.store.committed.apply(t.pending)
	t.store.mu.Unlock()

	<-t.store.writer
	return nil
}

// Rollback discards the pending writes and releases the writer slot
func (t *Tx) Rollback(context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	t.done = true
	t.pending = nil
	<-t.store.writer
	return nil
}
