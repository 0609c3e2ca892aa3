package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage/journal"
)

func insert(t *testing.T, w ITransactionTable, create *TransactionCreate) *Transaction {
	t.Helper()
	tx, err := w.Insert(context.Background(), create)
	require.NoError(t, err)
	return tx
}

func TestMemoryTable_Insert(t *testing.T) {
	table := NewMemoryTable()
	w := table.Writer(journal.New())

	tx := insert(t, w, &TransactionCreate{
		Type:        TypeDeposit,
		Destination: null.From("102"),
		Amount:      decimal.NewFromInt(500),
	})

	assert.False(t, tx.ID.IsNil())
	assert.Equal(t, TypeDeposit, tx.Type)
	assert.True(t, tx.Origin.IsNull())
	assert.Equal(t, "102", tx.Destination.GetOr(""))
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(500)))
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestMemoryTable_ListFiltersByAccountNewestFirst(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable()
	w := table.Writer(journal.New())

	first := insert(t, w, &TransactionCreate{Type: TypeDeposit, Destination: null.From("104"), Amount: decimal.NewFromInt(200)})
	insert(t, w, &TransactionCreate{Type: TypeDeposit, Destination: null.From("105"), Amount: decimal.NewFromInt(100)})
	last := insert(t, w, &TransactionCreate{Type: TypeTransfer, Origin: null.From("104"), Destination: null.From("105"), Amount: decimal.NewFromInt(100)})

	accountID := "104"
	txs, err := table.List(ctx, &TransactionFilter{AccountID: &accountID})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, last.ID, txs[0].ID)
	assert.Equal(t, first.ID, txs[1].ID)

	all, err := table.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryTable_ListMaxCreationTimeAndPaging(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable()
	w := table.Writer(journal.New())
	for i := 0; i < 5; i++ {
		insert(t, w, &TransactionCreate{Type: TypeDeposit, Destination: null.From("a"), Amount: decimal.NewFromInt(1)})
	}

	past := time.Now().Add(-time.Hour)
	none, err := table.List(ctx, &TransactionFilter{MaxCreationTime: &past})
	require.NoError(t, err)
	assert.Empty(t, none)

	page, err := table.List(ctx, &TransactionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 3)
}

func TestMemoryTable_RollbackRemovesInsert(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable()

	kept := journal.New()
	insert(t, table.Writer(kept), &TransactionCreate{Type: TypeDeposit, Destination: null.From("a"), Amount: decimal.NewFromInt(1)})
	require.NoError(t, kept.Commit(ctx))

	j := journal.New()
	insert(t, table.Writer(j), &TransactionCreate{Type: TypeWithdraw, Origin: null.From("a"), Amount: decimal.NewFromInt(1)})
	require.NoError(t, j.Rollback(ctx))

	all, err := table.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, TypeDeposit, all[0].Type)
}

func TestMemoryTable_DeleteAll(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable()
	w := table.Writer(journal.New())
	insert(t, w, &TransactionCreate{Type: TypeDeposit, Destination: null.From("a"), Amount: decimal.NewFromInt(1)})

	require.NoError(t, w.DeleteAll(ctx))
	all, err := table.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, w.DeleteAll(ctx), "idempotent")
}
