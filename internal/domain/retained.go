package domain

import "github.com/shopspring/decimal"

// RetainedTransaction is the memorized fact about a past deposit or
// withdrawal needed to validate later dispute, resolve and chargeback
// references. Withdrawals are retained only to block transaction id
// reuse; they never enter the dispute lifecycle.
type RetainedTransaction struct {
	ID       uint32
	ClientID uint16
	Type     TransactionType
	Amount   decimal.Decimal
	Disputed bool
}

// Disputable reports whether the transaction may enter the dispute
// lifecycle. Only deposits are disputable.
func (r *RetainedTransaction) Disputable() bool {
	return r.Type == TransactionTypeDeposit
}
