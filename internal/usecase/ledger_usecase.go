package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when held balances do not match
	// the outstanding disputes.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: held balances do not match open disputes")
)

// LedgerUseCase handles ledger-wide read operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Snapshot projects the final state of every known account, sorted by
// client id.
func (uc *LedgerUseCase) Snapshot(ctx context.Context) ([]domain.AccountSnapshot, error) {
	accounts, err := uc.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.AccountSnapshot, 0, len(accounts))
	for _, account := range accounts {
		snapshots = append(snapshots, account.Snapshot())
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ClientID < snapshots[j].ClientID
	})

	return snapshots, nil
}

// GetAccountSnapshot returns the snapshot of a single client's account.
func (uc *LedgerUseCase) GetAccountSnapshot(ctx context.Context, clientID uint16) (domain.AccountSnapshot, error) {
	account, err := uc.ledgerRepo.GetAccount(ctx, clientID)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	return account.Snapshot(), nil
}

// CheckConsistency verifies that every unlocked account's held balance
// equals the sum of its retained deposits currently under dispute.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	accounts, err := uc.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		return false, err
	}
	retained, err := uc.ledgerRepo.ListRetained(ctx)
	if err != nil {
		return false, err
	}

	disputedByClient := make(map[uint16]decimal.Decimal)
	for _, r := range retained {
		if r.Disputed {
			disputedByClient[r.ClientID] = disputedByClient[r.ClientID].Add(r.Amount)
		}
	}

	for _, account := range accounts {
		if account.Held.IsNegative() {
			return false, ErrInconsistentLedger
		}
		// A chargeback locks the account while its record stays
		// disputed, so locked accounts are exempt from the sum check.
		if account.Locked {
			continue
		}
		if !account.Held.Equal(disputedByClient[account.ClientID]) {
			return false, ErrInconsistentLedger
		}
	}

	return true, nil
}
