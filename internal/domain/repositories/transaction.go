package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions.
//
// Repositories called with the context passed to fn take part in the
// transaction. Calling ExecTx again with that context joins the outer
// transaction instead of opening a new one.
type TransactionManager interface {
	// ExecTx executes a function within a transaction. The transaction is
	// rolled back if fn returns an error.
	ExecTx(ctx context.Context, fn TxFn) error
}
