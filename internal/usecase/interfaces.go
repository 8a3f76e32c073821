package usecase

import (
	"context"

	"github.com/iho/payengine/internal/domain"
)

// LedgerRepository stores accounts and retained transactions.
//
// GetAccount returns domain.ErrAccountNotFound for unknown clients and
// GetRetained returns domain.ErrTransactionNotFound for unknown ids.
// Implementations must hand out copies: a caller mutating a returned
// value must have no effect until it saves the value back.
type LedgerRepository interface {
	GetAccount(ctx context.Context, clientID uint16) (*domain.Account, error)
	SaveAccount(ctx context.Context, account *domain.Account) error
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	GetRetained(ctx context.Context, id uint32) (*domain.RetainedTransaction, error)
	SaveRetained(ctx context.Context, retained *domain.RetainedTransaction) error
	ListRetained(ctx context.Context) ([]*domain.RetainedTransaction, error)
}

// TransactionSource yields parsed transactions one at a time, in input
// order. It returns io.EOF when the stream is exhausted.
type TransactionSource interface {
	Next() (domain.Transaction, error)
}
