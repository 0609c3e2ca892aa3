package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Writer mutates accounts inside a PostgreSQL transaction. Lookups made
// through a Writer lock the returned row until the transaction ends.
type Writer struct {
	tx bob.Executor
	Reader
}

var _ IAccountTable = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) FindByAccountID(ctx context.Context, accountID string) (*Account, error) {
	return w.findByAccountID(ctx, accountID, true)
}

func (w *Writer) Create(ctx context.Context, create *AccountCreate) (*Account, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("account.Create: %w", err)
	}
	now := time.Now().UTC()

	query := psql.Insert(
		im.Into(accountsTable, "id", "account_id", "balance", "credit", "created_at", "updated_at"),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.AccountID),
			psql.Arg(create.Balance),
			psql.Arg(DefaultCreditLimit),
			psql.Arg(now),
			psql.Arg(now),
		),
		im.Returning(accountColumns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[accountRow]())
	if err != nil {
		return nil, fmt.Errorf("account.Create %q: %w", create.AccountID, err)
	}
	return rowToAccount(row), nil
}

func (w *Writer) Save(ctx context.Context, id uuid.UUID, update *AccountUpdate) (*Account, error) {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(accountsTable),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
	}
	if balance, set := update.Balance.Get(); set {
		queryMods = append(queryMods, um.SetCol("balance").ToArg(balance))
	}
	if credit, set := update.Credit.Get(); set {
		queryMods = append(queryMods, um.SetCol("credit").ToArg(credit))
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(accountColumns...),
	)

	row, err := bob.One(ctx, w.tx, psql.Update(queryMods...), scan.StructMapper[accountRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account.Save %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("account.Save %s: %w", id, err)
	}
	return rowToAccount(row), nil
}

func (w *Writer) DeleteAll(ctx context.Context) error {
	_, err := bob.Exec(ctx, w.tx, psql.Delete(dm.From(accountsTable)))
	if err != nil {
		return fmt.Errorf("account.DeleteAll: %w", err)
	}
	return nil
}
