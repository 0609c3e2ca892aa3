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

// Withdraw debits Origin. When the balance does not cover Amount the
// shortfall is drawn from the account's credit line.
type Withdraw struct {
	Origin string
	Amount decimal.Decimal

	Result WithdrawResult
}

type WithdrawResult struct {
	Origin AccountState
}

func (w *Withdraw) Name() string { return "withdraw" }

func (w *Withdraw) Scope() Scope {
	return Scope{AccountIDs: []string{w.Origin}}
}

func (w *Withdraw) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := writer.Account.FindByAccountID(ctx, w.Origin)
	if err != nil {
		return err
	}
	if acc == nil {
		return accountNotFound(w.Origin)
	}

	available := acc.Balance.Add(acc.Credit)
	if available.LessThan(w.Amount) {
		return &InsufficientFundsError{
			Operation: w.Name(),
			AccountID: w.Origin,
			Available: available,
			Requested: w.Amount,
		}
	}

	newBalance, newCredit := drawDown(acc.Balance, acc.Credit, w.Amount)

	_, err = writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		Type:   transaction.TypeWithdraw,
		Origin: null.From(w.Origin),
		Amount: w.Amount,
	})
	if err != nil {
		return err
	}

	saved, err := writer.Account.Save(ctx, acc.ID, &account.AccountUpdate{
		Balance: omit.From(newBalance),
		Credit:  omit.From(newCredit),
	})
	if err != nil {
		return err
	}
	w.Result = WithdrawResult{Origin: stateOf(saved)}
	return nil
}

// drawDown takes amount from balance first and the remainder from credit.
// The caller guarantees balance+credit covers amount.
func drawDown(balance, credit, amount decimal.Decimal) (newBalance, newCredit decimal.Decimal) {
	newBalance = balance.Sub(amount)
	newCredit = credit
	if newBalance.IsNegative() {
		newCredit = credit.Add(newBalance)
		newBalance = decimal.Zero
	}
	return newBalance, newCredit
}
