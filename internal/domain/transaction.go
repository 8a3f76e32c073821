package domain

import "github.com/shopspring/decimal"

// TransactionType identifies the kind of operation an input row carries.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// Valid reports whether the type is one of the five known kinds.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeDispute, TransactionTypeResolve, TransactionTypeChargeback:
		return true
	}
	return false
}

// MovesFunds reports whether the type carries its own amount.
// Dispute, resolve and chargeback reference a prior transaction's amount.
func (t TransactionType) MovesFunds() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// Transaction is a single parsed input operation.
type Transaction struct {
	Type     TransactionType
	ClientID uint16
	ID       uint32
	Amount   decimal.NullDecimal // present only for deposit and withdrawal
}

// Validate checks the transaction's shape: the type must be known, and
// fund-moving transactions must carry a non-negative amount.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrUnknownTransactionType
	}

	if t.Type.MovesFunds() {
		if !t.Amount.Valid {
			return ErrMissingAmount
		}
		if t.Amount.Decimal.IsNegative() {
			return ErrNegativeAmount
		}
	}

	return nil
}
