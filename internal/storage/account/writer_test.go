package account

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountRowColumns = []string{"id", "account_id", "balance", "credit", "created_at", "updated_at"}

func newMockWriter(t *testing.T) (*Writer, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWriter(bob.NewDB(db)), mock
}

func TestWriter_FindByAccountID_LocksRow(t *testing.T) {
	w, mock := newMockWriter(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "?accounts"? WHERE .*account_id.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow(id.String(), "102", "500", "1000", now, now))

	acc, err := w.FindByAccountID(context.Background(), "102")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, id, acc.ID)
	assert.Equal(t, "102", acc.AccountID)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(500)))
	assert.True(t, acc.Credit.Equal(decimal.NewFromInt(1000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReader_FindByAccountID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewReader(bob.NewDB(db))

	mock.ExpectQuery(`SELECT .* FROM "?accounts"?`).WillReturnError(sql.ErrNoRows)

	acc, err := r.FindByAccountID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, acc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReader_FindByAccountID_StorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewReader(bob.NewDB(db))

	mock.ExpectQuery(`SELECT .* FROM "?accounts"?`).WillReturnError(errors.New("connection refused"))

	acc, err := r.FindByAccountID(context.Background(), "102")
	assert.ErrorContains(t, err, "connection refused")
	assert.Nil(t, acc)
}

func TestWriter_Create(t *testing.T) {
	w, mock := newMockWriter(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO "?accounts"?`).
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow(id.String(), "200", "150", "1000", now, now))

	acc, err := w.Create(context.Background(), &AccountCreate{AccountID: "200", Balance: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.Equal(t, "200", acc.AccountID)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(150)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Save_NotFound(t *testing.T) {
	w, mock := newMockWriter(t)

	mock.ExpectQuery(`UPDATE "?accounts"? SET`).WillReturnRows(sqlmock.NewRows(accountRowColumns))

	_, err := w.Save(context.Background(), uuid.Must(uuid.NewV7()), &AccountUpdate{
		Balance: omit.From(decimal.NewFromInt(1)),
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_Save(t *testing.T) {
	w, mock := newMockWriter(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE "?accounts"? SET .*balance.*credit`).
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow(id.String(), "102", "0", "300", now, now))

	acc, err := w.Save(context.Background(), id, &AccountUpdate{
		Balance: omit.From(decimal.Zero),
		Credit:  omit.From(decimal.NewFromInt(300)),
	})
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
	assert.True(t, acc.Credit.Equal(decimal.NewFromInt(300)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriter_DeleteAll(t *testing.T) {
	w, mock := newMockWriter(t)

	mock.ExpectExec(`DELETE FROM "?accounts"?`).WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, w.DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
