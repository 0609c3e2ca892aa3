package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// Scope names what an action must hold exclusively while it runs: the
// external ids of the accounts it reads and writes, or the whole ledger.
type Scope struct {
	AccountIDs []string
	Exclusive  bool
}

type IAction interface {
	Name() string
	Scope() Scope
	Perform(ctx context.Context, writer *storage.Writer) error
}

// AccountState is an account as an action left it.
type AccountState struct {
	ID      string
	Balance decimal.Decimal
	Credit  decimal.Decimal
}
