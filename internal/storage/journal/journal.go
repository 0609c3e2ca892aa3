// Package journal records undo steps for in-memory writes so a write
// transaction against the memory backend can be rolled back.
package journal

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("journal: transaction already closed")

// Journal is the in-memory counterpart of a database transaction.
type Journal struct {
	mu     sync.Mutex
	undo   []func()
	closed bool
}

func New() *Journal {
	return &Journal{}
}

// Record registers fn to run if the journal is rolled back. Steps run in
// reverse registration order.
func (j *Journal) Record(fn func()) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.undo = append(j.undo, fn)
}

func (j *Journal) Commit(_ context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	j.closed = true
	j.undo = nil
	return nil
}

func (j *Journal) Rollback(_ context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	j.closed = true
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
	return nil
}
