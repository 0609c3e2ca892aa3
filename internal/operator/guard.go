package operator

import (
	"slices"
	"sync"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// guard serializes actions that touch the same accounts. Account locks are
// always taken in sorted order so two actions over overlapping accounts
// cannot deadlock. An exclusive scope waits for every account-scoped action
// to finish and holds off new ones.
type guard struct {
	global sync.RWMutex

	mu       sync.Mutex
	accounts map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newGuard() *guard {
	return &guard{
		accounts: make(map[string]*accountLock),
	}
}

// acquire blocks until scope is held and returns the func that releases it.
func (g *guard) acquire(scope actions.Scope) func() {
	if scope.Exclusive {
		g.global.Lock()
		return g.global.Unlock
	}

	g.global.RLock()

	ids := slices.Clone(scope.AccountIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	locks := make([]*accountLock, len(ids))
	g.mu.Lock()
	for i, id := range ids {
		l, ok := g.accounts[id]
		if !ok {
			l = &accountLock{}
			g.accounts[id] = l
		}
		l.refs++
		locks[i] = l
	}
	g.mu.Unlock()

	for _, l := range locks {
		l.mu.Lock()
	}

	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].mu.Unlock()
		}

		g.mu.Lock()
		for i, id := range ids {
			locks[i].refs--
			if locks[i].refs == 0 {
				delete(g.accounts, id)
			}
		}
		g.mu.Unlock()

		g.global.RUnlock()
	}
}

// held returns the number of accounts with a live lock entry.
func (g *guard) held() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.accounts)
}
