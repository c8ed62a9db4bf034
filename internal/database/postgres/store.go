// Package postgres implements repository.Store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/stardust-engine/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// queries runs every registry statement against a querier. Inside a
// transaction single-row reads take a row lock so read-modify-write
// sequences serialize per entity.
type queries struct {
	db   querier
	lock bool
}

func (q *queries) forUpdate() string {
	if q.lock {
		return " FOR UPDATE"
	}
	return ""
}

// Store is the PostgreSQL backend
type Store struct {
	queries
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a store over an open pool. Migrations must already be applied.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{queries: queries{db: pool}, pool: pool}
}

// BeginTx starts a read-committed transaction whose reads lock the rows they return
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &Tx{queries: queries{db: tx, lock: true}, tx: tx}, nil
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Tx is a PostgreSQL transaction over every registry
type Tx struct {
	queries
	tx pgx.Tx
}

// Commit commits the transaction
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback aborts the transaction. Rolling back a committed transaction returns pgx.ErrTxClosed.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
