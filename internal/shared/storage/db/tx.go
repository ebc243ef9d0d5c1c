package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxRunner runs fn inside a unit of work bounded by timeout.
type TxRunner interface {
	WithinTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error
}

type txKey struct{}

// Executor returns the transaction bound to ctx, or database when there is none.
func Executor(ctx context.Context, database *sql.DB) DBTX {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return database
}

// TxManager runs units of work in a database/sql transaction.
type TxManager struct {
	DB *sql.DB
}

// WithinTx begins a transaction, stores it on the context handed to fn and
// commits when fn succeeds. The transaction is rolled back on any error or
// when timeout elapses.
func (m *TxManager) WithinTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// MemoryTx serializes units of work for in-memory repositories.
type MemoryTx struct {
	mu sync.Mutex
}

// WithinTx runs fn while holding the manager lock.
func (m *MemoryTx) WithinTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
