package storage

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Tx is the unit of work a Writer commits or rolls back.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Writer struct {
	tx          Tx
	Account     account.IAccountTable
	Transaction transaction.ITransactionTable
}

func NewWriter(tx Tx, accounts account.IAccountTable, transactions transaction.ITransactionTable) *Writer {
	return &Writer{
		tx:          tx,
		Account:     accounts,
		Transaction: transactions,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
