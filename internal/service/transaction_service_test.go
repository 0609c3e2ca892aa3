package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func newTransactionTestService(t *testing.T) (*LedgerService, *transaction.MockITransactionTable) {
	t.Helper()
	mockTable := transaction.NewMockITransactionTable(t)
	store := &storage.Storage{Reader: &storage.Reader{Transactions: mockTable}}
	svc := NewLedgerService(store, nil, nil)
	return svc, mockTable
}

func makeStorageTransactions(n int, createdAt time.Time) []*transaction.Transaction {
	rows := make([]*transaction.Transaction, n)
	for i := range rows {
		rows[i] = &transaction.Transaction{
			ID:          uuid.Must(uuid.NewV7()),
			Type:        transaction.TypeTransfer,
			Origin:      null.From("104"),
			Destination: null.From("105"),
			Amount:      decimal.RequireFromString("25.50"),
			CreatedAt:   createdAt,
		}
	}
	return rows
}

func TestListTransactions_NilCursor_UsesDefaults(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)

	mockTable.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil && f.AccountID == nil
	})).Return(makeStorageTransactions(2, time.Now()), nil)

	txs, cursor, err := svc.ListTransactions(context.Background(), "", nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, "transfer", txs[0].Type)
	assert.Equal(t, "104", txs[0].Origin.GetOrZero())
	assert.Nil(t, cursor)
}

func TestListTransactions_FiltersByAccount(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)

	mockTable.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.AccountID != nil && *f.AccountID == "105"
	})).Return(makeStorageTransactions(1, time.Now()), nil)

	txs, _, err := svc.ListTransactions(context.Background(), "105", nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestListTransactions_FirstPageFixesMaxCreationTime(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)
	newest := time.Now().UTC().Truncate(time.Second)

	mockTable.EXPECT().List(mock.Anything, mock.Anything).Return(makeStorageTransactions(3, newest), nil)

	txs, cursor, err := svc.ListTransactions(context.Background(), "", &TransactionCursor{Limit: 2})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	if assert.NotNil(t, cursor) {
		assert.Equal(t, 2, cursor.Position)
		assert.Equal(t, 2, cursor.Limit)
		assert.True(t, cursor.MaxCreationTime.Equal(newest))
	}
}

func TestListTransactions_LaterPageKeepsMaxCreationTime(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)
	pinned := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mockTable.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.MaxCreationTime != nil && f.MaxCreationTime.Equal(pinned) && f.Offset == 2
	})).Return(makeStorageTransactions(3, pinned.Add(-time.Hour)), nil)

	_, cursor, err := svc.ListTransactions(context.Background(), "", &TransactionCursor{
		Position:        2,
		Limit:           2,
		MaxCreationTime: pinned,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, cursor) {
		assert.Equal(t, 4, cursor.Position)
		assert.True(t, cursor.MaxCreationTime.Equal(pinned))
	}
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, mockTable := newTransactionTestService(t)

	mockTable.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("db error"))

	txs, cursor, err := svc.ListTransactions(context.Background(), "", nil)

	assert.Error(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, cursor)
}
