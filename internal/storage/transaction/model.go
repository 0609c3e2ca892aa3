package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type is the kind of funds movement a transaction records.
type Type string

const (
	TypeDeposit  Type = "deposit"
	TypeWithdraw Type = "withdraw"
	TypeTransfer Type = "transfer"
)

// Transaction represents a transaction record. Records are never edited.
type Transaction struct {
	ID          uuid.UUID
	Type        Type
	Origin      null.Val[string]
	Destination null.Val[string]
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// TransactionCreate is the input for appending a transaction.
type TransactionCreate struct {
	Type        Type
	Origin      null.Val[string]
	Destination null.Val[string]
	Amount      decimal.Decimal
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	// AccountID matches transactions where the account is origin or destination.
	AccountID       *string
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionReader is the read side of the transaction log.
type ITransactionReader interface {
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}

// ITransactionTable defines the append-only transaction log.
//
//go:generate mockery --name ITransactionTable --inpackage --with-expecter
type ITransactionTable interface {
	ITransactionReader
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	DeleteAll(ctx context.Context) error
}

func (f *TransactionFilter) matches(tx *Transaction) bool {
	if f == nil {
		return true
	}
	if f.AccountID != nil {
		origin, _ := tx.Origin.Get()
		destination, _ := tx.Destination.Get()
		if (tx.Origin.IsNull() || origin != *f.AccountID) &&
			(tx.Destination.IsNull() || destination != *f.AccountID) {
			return false
		}
	}
	if f.MaxCreationTime != nil && tx.CreatedAt.After(*f.MaxCreationTime) {
		return false
	}
	return true
}
