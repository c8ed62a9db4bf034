package repository

import (
	"context"
)

// Tx is a unit of work over every registry. All reads through a Tx observe
// its own uncommitted writes; nothing is visible to other callers until Commit.
type Tx interface {
	Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the storage backend used by the engines
type Store interface {
	Repository
	BeginTx(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
}

// RunInTx begins a transaction, runs fn and commits. Any error from fn rolls
// the transaction back and is returned unchanged.
func RunInTx(ctx context.Context, store Store, fn func(tx Tx) error) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
