package domain

import "errors"

var (
	// Transaction shape errors
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrMissingAmount          = errors.New("amount is required for this transaction type")
	ErrNegativeAmount         = errors.New("amount must not be negative")

	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountLocked     = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// Retained transaction errors
	ErrDuplicateTransaction = errors.New("transaction id already used")
	ErrTransactionNotFound  = errors.New("referenced transaction not found")
	ErrNotDisputable        = errors.New("only deposits can be disputed")
	ErrAlreadyDisputed      = errors.New("transaction is already under dispute")
	ErrNotDisputed          = errors.New("transaction is not under dispute")
	ErrClientMismatch       = errors.New("transaction belongs to a different client")
)

// ReasonCode maps a rejection reason to a stable snake_case code used
// in metrics labels and API responses.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownTransactionType):
		return "unknown_type"
	case errors.Is(err, ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, ErrNotDisputable):
		return "not_disputable"
	case errors.Is(err, ErrAlreadyDisputed):
		return "already_disputed"
	case errors.Is(err, ErrNotDisputed):
		return "not_disputed"
	case errors.Is(err, ErrClientMismatch):
		return "client_mismatch"
	default:
		return "internal"
	}
}
