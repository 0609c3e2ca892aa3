package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

const defaultAccountLimit = 20

// GetAccount retrieves an account by its external id.
func (s *LedgerService) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	row, err := s.storage.Reader.Accounts.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrAccountNotFound
	}
	converted := accountFromStorage(row)
	return &converted, nil
}

// ListAccounts returns a page of accounts using cursor pagination.
func (s *LedgerService) ListAccounts(ctx context.Context, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &account.AccountFilter{
		Limit:  limit,
		Offset: offset,
	}

	var nextCursor *AccountCursor
	accounts, err := s.storage.Reader.Accounts.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(accounts) == 0 {
		return nil, nil, nil
	}

	if len(accounts) > limit {
		accounts = accounts[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedAccounts := make([]Account, len(accounts))
	for i, acc := range accounts {
		convertedAccounts[i] = accountFromStorage(acc)
	}

	return convertedAccounts, nextCursor, nil
}

func accountFromStorage(acc *account.Account) Account {
	return Account{
		ID:        acc.ID,
		AccountID: acc.AccountID,
		Balance:   acc.Balance,
		Credit:    acc.Credit,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}
