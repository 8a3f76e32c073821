package memory

import (
	"context"
	"sync"

	"github.com/iho/payengine/internal/domain"
)

// LedgerRepository is the in-memory ledger store. It keeps every
// account and retained transaction for the lifetime of the process;
// records are never evicted since any retained deposit may be disputed
// at any later point in the stream.
//
// All values cross the boundary by copy, so a caller mutating a
// fetched account has no observable effect until it saves it back.
type LedgerRepository struct {
	mu       sync.RWMutex
	accounts map[uint16]*domain.Account
	retained map[uint32]*domain.RetainedTransaction
}

// NewLedgerRepository creates an empty in-memory ledger store.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		accounts: make(map[uint16]*domain.Account),
		retained: make(map[uint32]*domain.RetainedTransaction),
	}
}

// GetAccount returns a copy of the client's account.
func (r *LedgerRepository) GetAccount(ctx context.Context, clientID uint16) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[clientID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	cp := *account
	return &cp, nil
}

// SaveAccount stores a copy of the account, creating or replacing it.
func (r *LedgerRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *account
	r.accounts[account.ClientID] = &cp
	return nil
}

// ListAccounts returns copies of all known accounts in unspecified order.
func (r *LedgerRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		cp := *account
		accounts = append(accounts, &cp)
	}
	return accounts, nil
}

// GetRetained returns a copy of the retained transaction for id.
func (r *LedgerRepository) GetRetained(ctx context.Context, id uint32) (*domain.RetainedTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	retained, ok := r.retained[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	cp := *retained
	return &cp, nil
}

// SaveRetained stores a copy of the retained transaction.
func (r *LedgerRepository) SaveRetained(ctx context.Context, retained *domain.RetainedTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *retained
	r.retained[retained.ID] = &cp
	return nil
}

// ListRetained returns copies of all retained transactions.
func (r *LedgerRepository) ListRetained(ctx context.Context) ([]*domain.RetainedTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	retained := make([]*domain.RetainedTransaction, 0, len(r.retained))
	for _, rt := range r.retained {
		cp := *rt
		retained = append(retained, &cp)
	}
	return retained, nil
}
