package account

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/journal"
)

// MemoryTable keeps accounts in process memory. It is created once and
// shared by every reader and writer of the memory backend.
type MemoryTable struct {
	mu         sync.RWMutex
	accounts   []*Account
	byID       map[uuid.UUID]int
	byExternal map[string]int
}

var _ IAccountReader = (*MemoryTable)(nil)

func NewMemoryTable() *MemoryTable {
	return &MemoryTable{
		byID:       make(map[uuid.UUID]int),
		byExternal: make(map[string]int),
	}
}

// Writer returns a view of the table whose mutations are undone when j is
// rolled back.
func (t *MemoryTable) Writer(j *journal.Journal) IAccountTable {
	return &memoryWriter{MemoryTable: t, journal: j}
}

func (t *MemoryTable) FindByAccountID(_ context.Context, accountID string) (*Account, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, ok := t.byExternal[accountID]
	if !ok {
		return nil, nil
	}
	cp := *t.accounts[idx]
	return &cp, nil
}

func (t *MemoryTable) List(_ context.Context, filter *AccountFilter) ([]*Account, error) {
	t.mu.RLock()
	sorted := make([]*Account, len(t.accounts))
	for i, a := range t.accounts {
		cp := *a
		sorted[i] = &cp
	}
	t.mu.RUnlock()

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].AccountID != sorted[j].AccountID {
			return sorted[i].AccountID < sorted[j].AccountID
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	if filter == nil {
		return sorted, nil
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(sorted) {
			return []*Account{}, nil
		}
		sorted = sorted[filter.Offset:]
	}
	if filter.Limit > 0 && len(sorted) > filter.Limit+1 {
		sorted = sorted[:filter.Limit+1]
	}
	return sorted, nil
}

// reindex must be called with mu held for writing.
func (t *MemoryTable) reindex() {
	t.byID = make(map[uuid.UUID]int, len(t.accounts))
	t.byExternal = make(map[string]int, len(t.accounts))
	for i, a := range t.accounts {
		t.byID[a.ID] = i
		if _, dup := t.byExternal[a.AccountID]; !dup {
			t.byExternal[a.AccountID] = i
		}
	}
}

type memoryWriter struct {
	*MemoryTable
	journal *journal.Journal
}

func (w *memoryWriter) Create(_ context.Context, create *AccountCreate) (*Account, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("account.Create: %w", err)
	}
	now := time.Now().UTC()
	created := &Account{
		ID:        id,
		AccountID: create.AccountID,
		Balance:   create.Balance,
		Credit:    DefaultCreditLimit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.byExternal[create.AccountID]; exists {
		return nil, fmt.Errorf("account.Create %q: %w", create.AccountID, ErrAlreadyExists)
	}
	w.accounts = append(w.accounts, created)
	w.byID[id] = len(w.accounts) - 1
	w.byExternal[create.AccountID] = len(w.accounts) - 1

	w.journal.Record(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		idx, ok := w.byID[id]
		if !ok {
			return
		}
		w.accounts = append(w.accounts[:idx], w.accounts[idx+1:]...)
		w.reindex()
	})

	cp := *created
	return &cp, nil
}

func (w *memoryWriter) Save(_ context.Context, id uuid.UUID, update *AccountUpdate) (*Account, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, ok := w.byID[id]
	if !ok {
		return nil, fmt.Errorf("account.Save %s: %w", id, ErrNotFound)
	}
	previous := *w.accounts[idx]
	next := previous
	if balance, set := update.Balance.Get(); set {
		next.Balance = balance
	}
	if credit, set := update.Credit.Get(); set {
		next.Credit = credit
	}
	next.UpdatedAt = time.Now().UTC()
	w.accounts[idx] = &next

	w.journal.Record(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if i, ok := w.byID[id]; ok {
			restored := previous
			w.accounts[i] = &restored
		}
	})

	cp := next
	return &cp, nil
}

func (w *memoryWriter) DeleteAll(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	previous := w.accounts
	w.accounts = nil
	w.reindex()

	w.journal.Record(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.accounts = previous
		w.reindex()
	})
	return nil
}
