package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// TxHandle is the part of a database transaction the Writer needs.
// Satisfied by bob.Tx; tests substitute a fake.
type TxHandle interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer scopes account and transaction table access to one database
// transaction, so a multi-row change commits or rolls back as a unit.
type Writer struct {
	Tx           TxHandle
	Accounts     account.IAccountTable
	Transactions transaction.ITransactionTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Tx:           tx,
		Accounts:     account.NewTable(tx),
		Transactions: transaction.NewTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.Tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.Tx.Rollback(context.Background())
}
