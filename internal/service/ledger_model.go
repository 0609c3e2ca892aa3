package service

import (
	"errors"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

var (
	ErrAccountNotFound   = actions.ErrAccountNotFound
	ErrInsufficientFunds = actions.ErrInsufficientFunds
	ErrSameAccount       = actions.ErrSameAccount

	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrMissingAccountID = errors.New("account id is required")
)

// AccountState is an account's external id and funds after an operation.
type AccountState struct {
	ID      string
	Balance decimal.Decimal
	Credit  decimal.Decimal
}

type DepositResult struct {
	Destination AccountState
	Opened      bool
}

type WithdrawResult struct {
	Origin AccountState
}

type TransferResult struct {
	Origin      AccountState
	Destination AccountState
}

// Account represents an account in the service layer.
type Account struct {
	ID        uuid.UUID
	AccountID string
	Balance   decimal.Decimal
	Credit    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// Transaction represents a logged funds movement in the service layer.
type Transaction struct {
	ID          uuid.UUID
	Type        string
	Origin      null.Val[string]
	Destination null.Val[string]
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func stateFromAction(s actions.AccountState) AccountState {
	return AccountState{
		ID:      s.ID,
		Balance: s.Balance,
		Credit:  s.Credit,
	}
}
