package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const transactionsTable = "transactions"

var transactionColumns = []any{"id", "type", "origin", "destination", "amount", "created_at"}

type transactionRow struct {
	ID          uuid.UUID        `db:"id"`
	Type        string           `db:"type"`
	Origin      null.Val[string] `db:"origin"`
	Destination null.Val[string] `db:"destination"`
	Amount      decimal.Decimal  `db:"amount"`
	CreatedAt   time.Time        `db:"created_at"`
}

func rowToTransaction(row transactionRow) *Transaction {
	return &Transaction{
		ID:          row.ID,
		Type:        Type(row.Type),
		Origin:      row.Origin,
		Destination: row.Destination,
		Amount:      row.Amount,
		CreatedAt:   row.CreatedAt,
	}
}

// Reader reads the transaction log from PostgreSQL.
type Reader struct {
	exec bob.Executor
}

var _ ITransactionReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns transactions matching the filter, newest first. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
	}
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Or(
				psql.Quote("origin").EQ(psql.Arg(*filter.AccountID)),
				psql.Quote("destination").EQ(psql.Arg(*filter.AccountID)),
			)))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, fmt.Errorf("transaction.List: %w", err)
	}
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}
