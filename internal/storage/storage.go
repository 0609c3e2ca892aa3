package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/journal"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Storage owns the account store and the transaction log for the process.
// Reads go through Reader; every mutation goes through a Writer from Write.
type Storage struct {
	Reader *Reader

	begin func(ctx context.Context) (*Writer, error)
	close func() error
}

// NewStorage builds the backend selected by the configuration.
func NewStorage(env *config.Config) (*Storage, error) {
	switch env.StorageBackend {
	case BackendMemory, "":
		return NewMemoryStorage(), nil
	case BackendPostgres:
		db, err := sql.Open("postgres", env.PostgresConnectionString())
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		return NewPostgresStorage(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", env.StorageBackend)
	}
}

// NewMemoryStorage keeps accounts and transactions in process memory.
func NewMemoryStorage() *Storage {
	accounts := account.NewMemoryTable()
	transactions := transaction.NewMemoryTable()

	return &Storage{
		Reader: &Reader{
			Accounts:     accounts,
			Transactions: transactions,
		},
		begin: func(_ context.Context) (*Writer, error) {
			j := journal.New()
			return NewWriter(j, accounts.Writer(j), transactions.Writer(j)), nil
		},
		close: func() error { return nil },
	}
}

// NewPostgresStorage stores accounts and transactions in PostgreSQL.
func NewPostgresStorage(db *sql.DB) *Storage {
	exec := bob.NewDB(db)

	return &Storage{
		Reader: NewReader(exec),
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := exec.BeginTx(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("BeginTx: %w", err)
			}
			return NewWriter(tx, account.NewWriter(tx), transaction.NewWriter(tx)), nil
		},
		close: db.Close,
	}
}

// Write opens a write transaction. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

func (s *Storage) Close() error {
	logrus.Info("storage.Close")
	return s.close()
}
