package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor is the statement-execution surface shared by *pgxpool.Pool,
// *pgxpool.Conn and pgx.Tx, so loading code runs unchanged inside or outside
// a transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WithTx acquires one connection, opens a transaction, and runs fn against
// it. The transaction commits when fn returns nil and rolls back otherwise;
// the connection is released either way.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context, q Executor) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// WithConn acquires one connection for the duration of fn with no implicit
// transaction: every statement auto-commits. Used by the facts-only dimension
// read-back so fallback-generated rows persist even if a later transaction
// rolls back.
func WithConn(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context, q Executor) error) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(ctx, conn)
}
