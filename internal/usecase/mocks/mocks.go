package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/iho/payengine/internal/domain"
)

// MockLedgerRepository is a mock implementation of LedgerRepository.
// When a Func field is unset, it falls back to map-backed behavior.
type MockLedgerRepository struct {
	mu       sync.RWMutex
	accounts map[uint16]*domain.Account
	retained map[uint32]*domain.RetainedTransaction

	GetAccountFunc   func(ctx context.Context, clientID uint16) (*domain.Account, error)
	SaveAccountFunc  func(ctx context.Context, account *domain.Account) error
	ListAccountsFunc func(ctx context.Context) ([]*domain.Account, error)
	GetRetainedFunc  func(ctx context.Context, id uint32) (*domain.RetainedTransaction, error)
	SaveRetainedFunc func(ctx context.Context, retained *domain.RetainedTransaction) error
	ListRetainedFunc func(ctx context.Context) ([]*domain.RetainedTransaction, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		accounts: make(map[uint16]*domain.Account),
		retained: make(map[uint32]*domain.RetainedTransaction),
	}
}

func (m *MockLedgerRepository) GetAccount(ctx context.Context, clientID uint16) (*domain.Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, clientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[clientID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (m *MockLedgerRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	if m.SaveAccountFunc != nil {
		return m.SaveAccountFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ClientID] = &cp
	return nil
}

func (m *MockLedgerRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		cp := *account
		accounts = append(accounts, &cp)
	}
	return accounts, nil
}

func (m *MockLedgerRepository) GetRetained(ctx context.Context, id uint32) (*domain.RetainedTransaction, error) {
	if m.GetRetainedFunc != nil {
		return m.GetRetainedFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	retained, ok := m.retained[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *retained
	return &cp, nil
}

func (m *MockLedgerRepository) SaveRetained(ctx context.Context, retained *domain.RetainedTransaction) error {
	if m.SaveRetainedFunc != nil {
		return m.SaveRetainedFunc(ctx, retained)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *retained
	m.retained[retained.ID] = &cp
	return nil
}

func (m *MockLedgerRepository) ListRetained(ctx context.Context) ([]*domain.RetainedTransaction, error) {
	if m.ListRetainedFunc != nil {
		return m.ListRetainedFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	retained := make([]*domain.RetainedTransaction, 0, len(m.retained))
	for _, r := range m.retained {
		cp := *r
		retained = append(retained, &cp)
	}
	return retained, nil
}

// MockTransactionSource replays a fixed slice of transactions.
type MockTransactionSource struct {
	Transactions []domain.Transaction
	Err          error

	pos int
}

func (m *MockTransactionSource) Next() (domain.Transaction, error) {
	if m.pos >= len(m.Transactions) {
		if m.Err != nil {
			return domain.Transaction{}, m.Err
		}
		return domain.Transaction{}, io.EOF
	}
	tx := m.Transactions[m.pos]
	m.pos++
	return tx, nil
}
