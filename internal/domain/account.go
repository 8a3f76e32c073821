package domain

import "github.com/shopspring/decimal"

// Account is the per-client ledger state. Total is always derived from
// Available and Held, never stored on its own.
type Account struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount creates a zero-balance unlocked account for a client.
func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total returns the account's total balance.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// ValidateWithdrawal checks if amount can be withdrawn from the account.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// Snapshot projects the account into its read view.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		ClientID:  a.ClientID,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}
