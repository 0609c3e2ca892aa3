package actions

import (
	"context"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Deposit credits Destination, opening the account if it does not exist.
type Deposit struct {
	Destination string
	Amount      decimal.Decimal

	Result DepositResult
}

type DepositResult struct {
	Destination AccountState
	// Opened is set when the deposit created the account.
	Opened bool
}

func (d *Deposit) Name() string { return "deposit" }

func (d *Deposit) Scope() Scope {
	return Scope{AccountIDs: []string{d.Destination}}
}

func (d *Deposit) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Account.FindByAccountID(ctx, d.Destination)
	if err != nil {
		return err
	}

	_, err = writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		Type:        transaction.TypeDeposit,
		Destination: null.From(d.Destination),
		Amount:      d.Amount,
	})
	if err != nil {
		return err
	}

	if existing == nil {
		created, err := writer.Account.Create(ctx, &account.AccountCreate{
			AccountID: d.Destination,
			Balance:   d.Amount,
		})
		if err != nil {
			return err
		}
		d.Result = DepositResult{Destination: stateOf(created), Opened: true}
		return nil
	}

	saved, err := writer.Account.Save(ctx, existing.ID, &account.AccountUpdate{
		Balance: omit.From(existing.Balance.Add(d.Amount)),
	})
	if err != nil {
		return err
	}
	d.Result = DepositResult{Destination: stateOf(saved)}
	return nil
}

func stateOf(a *account.Account) AccountState {
	return AccountState{
		ID:      a.AccountID,
		Balance: a.Balance,
		Credit:  a.Credit,
	}
}
