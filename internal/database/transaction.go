package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/repositories"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func setTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func getTx(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

// executor returns the transaction carried by ctx, or the database. With a
// single connection, running a statement outside an open transaction would
// block until it finishes.
func (db *DB) executor(ctx context.Context) DBTX {
	if tx := getTx(ctx); tx != nil {
		return tx
	}
	return db.DB
}

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	db     *DB
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *DB, logger *slog.Logger) *TransactionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionManager{db: db, logger: logger}
}

var _ repositories.TransactionManager = (*TransactionManager)(nil)

// ExecTx executes a function within a transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return tm.execTx(ctx, nil, fn)
}

// readSnapshot runs fn in a plain transaction. The pool holds one
// connection, so no other statement can write until fn returns and every
// query inside reads the same state.
func (tm *TransactionManager) readSnapshot(ctx context.Context, fn repositories.TxFn) error {
	return tm.execTx(ctx, nil, fn)
}

func (tm *TransactionManager) execTx(ctx context.Context, opts *sql.TxOptions, fn repositories.TxFn) error {
	// Join the caller's transaction
	if getTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, opts)
	if err != nil {
		return domain.WrapDB("begin transaction", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			tm.logger.Warn("rollback failed", "error", err)
		}
	}()

	if err := fn(setTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapDB("commit transaction", err)
	}
	return nil
}
