//go:build integration
// +build integration

package storage_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/migrate"
)

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("ledger"),
		postgres.WithUsername("ledger"),
		postgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)

	_, post, err := migrate.Up(db, "file://../../migrations")
	require.NoError(t, err)
	require.Equal(t, uint(2), post)

	return db
}

func newPostgresLedger(t *testing.T) (*service.LedgerService, *storage.Storage) {
	t.Helper()
	store := storage.NewPostgresStorage(setupPostgres(t))
	t.Cleanup(func() { _ = store.Close() })

	delegator := operator.NewOperatorDelegator(store, 4, nil)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	return service.NewLedgerService(store, delegator, nil), store
}

func TestPostgres_LedgerScenarios(t *testing.T) {
	svc, _ := newPostgresLedger(t)
	ctx := context.Background()

	_, err := svc.Balance(ctx, "200")
	require.ErrorIs(t, err, service.ErrAccountNotFound)

	deposit, err := svc.Deposit(ctx, "200", decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.True(t, deposit.Opened)

	balance, err := svc.Balance(ctx, "200")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(150)))

	_, err = svc.Deposit(ctx, "102", decimal.NewFromInt(500))
	require.NoError(t, err)
	withdraw, err := svc.Withdraw(ctx, "102", decimal.NewFromInt(1200))
	require.NoError(t, err)
	assert.True(t, withdraw.Origin.Balance.IsZero())
	assert.True(t, withdraw.Origin.Credit.Equal(decimal.NewFromInt(300)))

	_, err = svc.Deposit(ctx, "103", decimal.NewFromInt(200))
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, "103", decimal.NewFromInt(1300))
	require.ErrorIs(t, err, service.ErrInsufficientFunds)

	_, err = svc.Deposit(ctx, "104", decimal.NewFromInt(200))
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, "105", decimal.NewFromInt(100))
	require.NoError(t, err)
	transfer, err := svc.Transfer(ctx, "104", "105", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, transfer.Origin.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, transfer.Destination.Balance.Equal(decimal.NewFromInt(200)))

	txs, _, err := svc.ListTransactions(ctx, "104", nil)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, "transfer", txs[0].Type)

	accounts, _, err := svc.ListAccounts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, accounts, 5)

	require.NoError(t, svc.Reset(ctx))
	_, err = svc.Balance(ctx, "200")
	require.ErrorIs(t, err, service.ErrAccountNotFound)
	txs, _, err = svc.ListTransactions(ctx, "", nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestPostgres_ConcurrentWithdrawalsRespectCredit(t *testing.T) {
	svc, _ := newPostgresLedger(t)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "100", decimal.NewFromInt(100))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Withdraw(ctx, "100", decimal.NewFromInt(100)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 100 of balance plus 1000 of credit covers exactly eleven withdrawals.
	assert.Equal(t, 11, succeeded)
	acc, err := svc.GetAccount(ctx, "100")
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
	assert.True(t, acc.Credit.IsZero())
}

func TestPostgres_RollbackLeavesNoTrace(t *testing.T) {
	_, store := newPostgresLedger(t)
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = writer.Account.Create(ctx, &account.AccountCreate{AccountID: "ghost", Balance: decimal.NewFromInt(5)})
	require.NoError(t, err)
	require.NoError(t, writer.Rollback(ctx))

	acc, err := store.Reader.Accounts.FindByAccountID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, acc)
}
