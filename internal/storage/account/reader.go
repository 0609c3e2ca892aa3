package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const accountsTable = "accounts"

var accountColumns = []any{"id", "account_id", "balance", "credit", "created_at", "updated_at"}

type accountRow struct {
	ID        uuid.UUID       `db:"id"`
	AccountID string          `db:"account_id"`
	Balance   decimal.Decimal `db:"balance"`
	Credit    decimal.Decimal `db:"credit"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func rowToAccount(row accountRow) *Account {
	return &Account{
		ID:        row.ID,
		AccountID: row.AccountID,
		Balance:   row.Balance,
		Credit:    row.Credit,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// Reader reads accounts from PostgreSQL.
type Reader struct {
	exec bob.Executor
}

var _ IAccountReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByAccountID(ctx context.Context, accountID string) (*Account, error) {
	return r.findByAccountID(ctx, accountID, false)
}

func (r *Reader) findByAccountID(ctx context.Context, accountID string, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From(accountsTable),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.Limit(1),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("account.FindByAccountID %q: %w", accountID, err)
	}
	return rowToAccount(row), nil
}

func (r *Reader) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(accountColumns...),
		sm.From(accountsTable),
	}
	if filter != nil {
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("account_id")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if err != nil {
		return nil, fmt.Errorf("account.List: %w", err)
	}
	result := make([]*Account, len(rows))
	for i, row := range rows {
		result[i] = rowToAccount(row)
	}
	return result, nil
}
