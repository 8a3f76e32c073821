package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

// SubmitTransactionRequest represents a request to apply one transaction.
type SubmitTransactionRequest struct {
	Type   string           `json:"type"`
	Client uint16           `json:"client"`
	Tx     uint32           `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// ToDomain converts the request to a domain transaction. Shape
// validation is left to the engine.
func (r *SubmitTransactionRequest) ToDomain() domain.Transaction {
	tx := domain.Transaction{
		Type:     domain.TransactionType(r.Type),
		ClientID: r.Client,
		ID:       r.Tx,
	}
	if r.Amount != nil {
		tx.Amount = decimal.NullDecimal{Decimal: *r.Amount, Valid: true}
	}
	return tx
}
