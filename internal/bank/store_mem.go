package bank

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps the ledger in process memory. The catalog mutex guards
// the maps themselves; each account additionally carries its own mutex so
// operations on disjoint accounts never serialize against each other.
type MemoryStore struct {
	mu         sync.RWMutex
	principals map[string]*Principal
	accounts   map[string]*Account
	locks      map[string]*sync.Mutex
	txns       []Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		principals: make(map[string]*Principal),
		accounts:   make(map[string]*Account),
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *MemoryStore) PrincipalByID(ctx context.Context, customerID string) (Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.principals[customerID]
	if !ok {
		return Principal{}, false
	}
	return *p, true
}

func (s *MemoryStore) PrincipalByEmail(ctx context.Context, email string) (Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.principals {
		if p.Email == email {
			return *p, true
		}
	}
	return Principal{}, false
}

func (s *MemoryStore) AddPrincipal(p Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.principals[p.CustomerID] = &cp
}

func (s *MemoryStore) Account(ctx context.Context, number string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[number]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

func (s *MemoryStore) Accounts(ctx context.Context) []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out
}

func (s *MemoryStore) CreateAccount(ctx context.Context, acct Account) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[acct.AccountNumber]; ok {
		return Account{}, ErrAccountExists
	}
	cp := acct
	s.accounts[acct.AccountNumber] = &cp
	s.locks[acct.AccountNumber] = &sync.Mutex{}
	return cp, nil
}

// lockFor returns the mutex for an account, creating it for accounts seeded
// directly into the map.
func (s *MemoryStore) lockFor(number string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[number]
	if !ok {
		l = &sync.Mutex{}
		s.locks[number] = l
	}
	return l
}

// Mutate implements the engine's commit point. Per-account locks are taken in
// ascending account-number order so a concurrent A→B and B→A transfer cannot
// deadlock. fn works on private copies; holders of the same per-account locks
// are the only writers, so the copies cannot go stale before publication. On
// success the copies and fn's transaction are published under the catalog
// lock in one step: no partial state is ever visible, and mutation plus
// record-append form one indivisible unit.
func (s *MemoryStore) Mutate(ctx context.Context, ids []string, fn func(accts map[string]*Account) (*Transaction, error)) (*Transaction, error) {
	ordered := make([]string, len(ids))
	copy(ordered, ids)
	sort.Strings(ordered)

	locks := make([]*sync.Mutex, 0, len(ordered))
	for i, id := range ordered {
		if i > 0 && ordered[i-1] == id {
			continue // same account on both legs
		}
		locks = append(locks, s.lockFor(id))
	}
	for _, l := range locks {
		l.Lock()
	}
	defer func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}()

	view := make(map[string]*Account, len(ids))
	s.mu.RLock()
	for _, id := range ids {
		if a, ok := s.accounts[id]; ok {
			cp := *a
			view[id] = &cp
		}
	}
	s.mu.RUnlock()

	txn, err := fn(view)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for id, cp := range view {
		if live, ok := s.accounts[id]; ok {
			*live = *cp
		}
	}
	if txn != nil {
		s.txns = append(s.txns, *txn)
	}
	s.mu.Unlock()
	return txn, nil
}

func (s *MemoryStore) AppendTransaction(txn Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, txn)
}

func (s *MemoryStore) Transactions(ctx context.Context) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

func (s *MemoryStore) TransactionsByAccount(ctx context.Context, number string) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Transaction
	for _, t := range s.txns {
		if t.FromAccount == number || t.ToAccount == number {
			out = append(out, t)
		}
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
