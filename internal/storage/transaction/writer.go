package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

// Writer appends to the transaction log inside a PostgreSQL transaction.
type Writer struct {
	tx bob.Executor
	Reader
}

var _ ITransactionTable = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert appends a transaction and returns the stored record.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("transaction.Insert: %w", err)
	}

	query := psql.Insert(
		im.Into(transactionsTable, "id", "type", "origin", "destination", "amount", "created_at"),
		im.Values(
			psql.Arg(id),
			psql.Arg(string(create.Type)),
			psql.Arg(create.Origin),
			psql.Arg(create.Destination),
			psql.Arg(create.Amount),
			psql.Arg(time.Now().UTC()),
		),
		im.Returning(transactionColumns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, fmt.Errorf("transaction.Insert %s: %w", create.Type, err)
	}
	return rowToTransaction(row), nil
}

func (w *Writer) DeleteAll(ctx context.Context) error {
	_, err := bob.Exec(ctx, w.tx, psql.Delete(dm.From(transactionsTable)))
	if err != nil {
		return fmt.Errorf("transaction.DeleteAll: %w", err)
	}
	return nil
}
