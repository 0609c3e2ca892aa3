package transaction

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/journal"
)

// MemoryTable keeps the transaction log in process memory.
type MemoryTable struct {
	mu           sync.RWMutex
	transactions []*Transaction
}

var _ ITransactionReader = (*MemoryTable)(nil)

func NewMemoryTable() *MemoryTable {
	return &MemoryTable{}
}

// Writer returns a view of the log whose appends are undone when j is
// rolled back.
func (t *MemoryTable) Writer(j *journal.Journal) ITransactionTable {
	return &memoryWriter{MemoryTable: t, journal: j}
}

func (t *MemoryTable) List(_ context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	t.mu.RLock()
	var result []*Transaction
	for _, tx := range t.transactions {
		if filter.matches(tx) {
			cp := *tx
			result = append(result, &cp)
		}
	}
	t.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return bytes.Compare(result[i].ID.Bytes(), result[j].ID.Bytes()) > 0
	})

	if filter == nil {
		return result, nil
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*Transaction{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit+1 {
		result = result[:filter.Limit+1]
	}
	return result, nil
}

type memoryWriter struct {
	*MemoryTable
	journal *journal.Journal
}

func (w *memoryWriter) Insert(_ context.Context, create *TransactionCreate) (*Transaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("transaction.Insert: %w", err)
	}
	tx := &Transaction{
		ID:          id,
		Type:        create.Type,
		Origin:      create.Origin,
		Destination: create.Destination,
		Amount:      create.Amount,
		CreatedAt:   time.Now().UTC(),
	}

	w.mu.Lock()
	w.transactions = append(w.transactions, tx)
	w.mu.Unlock()

	w.journal.Record(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		for i := len(w.transactions) - 1; i >= 0; i-- {
			if w.transactions[i].ID == id {
				w.transactions = append(w.transactions[:i], w.transactions[i+1:]...)
				return
			}
		}
	})

	cp := *tx
	return &cp, nil
}

func (w *memoryWriter) DeleteAll(_ context.Context) error {
	w.mu.Lock()
	previous := w.transactions
	w.transactions = nil
	w.mu.Unlock()

	w.journal.Record(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.transactions = previous
	})
	return nil
}
