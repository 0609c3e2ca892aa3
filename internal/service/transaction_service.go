package service

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const defaultLimit = 20

// ListTransactions returns a page of logged transactions, newest first,
// using cursor-based pagination. An empty accountID lists every account.
func (s *LedgerService) ListTransactions(ctx context.Context, accountID string, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		if !cursor.MaxCreationTime.IsZero() {
			maxCreationTime = &cursor.MaxCreationTime
		}
	}

	filter := &transaction.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if accountID != "" {
		filter.AccountID = &accountID
	}

	rows, err := s.storage.Reader.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = Transaction{
			ID:          row.ID,
			Type:        string(row.Type),
			Origin:      row.Origin,
			Destination: row.Destination,
			Amount:      row.Amount,
			CreatedAt:   row.CreatedAt,
		}
	}

	return convertedTransactions, nextCursor, nil
}
