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

// Transfer moves existing balance between two existing accounts. Credit is
// never drawn on.
type Transfer struct {
	Origin      string
	Destination string
	Amount      decimal.Decimal

	Result TransferResult
}

type TransferResult struct {
	Origin      AccountState
	Destination AccountState
}

func (t *Transfer) Name() string { return "transfer" }

func (t *Transfer) Scope() Scope {
	return Scope{AccountIDs: []string{t.Origin, t.Destination}}
}

func (t *Transfer) Perform(ctx context.Context, writer *storage.Writer) error {
	origin, err := writer.Account.FindByAccountID(ctx, t.Origin)
	if err != nil {
		return err
	}
	if origin == nil {
		return accountNotFound(t.Origin)
	}

	destination, err := writer.Account.FindByAccountID(ctx, t.Destination)
	if err != nil {
		return err
	}
	if destination == nil {
		return accountNotFound(t.Destination)
	}

	if origin.ID == destination.ID {
		return ErrSameAccount
	}

	if origin.Balance.LessThan(t.Amount) {
		return &InsufficientFundsError{
			Operation: t.Name(),
			AccountID: t.Origin,
			Available: origin.Balance,
			Requested: t.Amount,
		}
	}

	_, err = writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		Type:        transaction.TypeTransfer,
		Origin:      null.From(t.Origin),
		Destination: null.From(t.Destination),
		Amount:      t.Amount,
	})
	if err != nil {
		return err
	}

	savedOrigin, err := writer.Account.Save(ctx, origin.ID, &account.AccountUpdate{
		Balance: omit.From(origin.Balance.Sub(t.Amount)),
	})
	if err != nil {
		return err
	}
	savedDestination, err := writer.Account.Save(ctx, destination.ID, &account.AccountUpdate{
		Balance: omit.From(destination.Balance.Add(t.Amount)),
	})
	if err != nil {
		return err
	}

	t.Result = TransferResult{
		Origin:      stateOf(savedOrigin),
		Destination: stateOf(savedDestination),
	}
	return nil
}
