package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

// AccountResponse represents an account snapshot in API responses.
type AccountResponse struct {
	Client    uint16          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// AccountFromSnapshot converts a domain snapshot to a response.
func AccountFromSnapshot(s domain.AccountSnapshot) *AccountResponse {
	return &AccountResponse{
		Client:    s.ClientID,
		Available: s.Available,
		Held:      s.Held,
		Total:     s.Total,
		Locked:    s.Locked,
	}
}

// AccountsFromSnapshots converts domain snapshots to responses.
func AccountsFromSnapshots(snapshots []domain.AccountSnapshot) []*AccountResponse {
	result := make([]*AccountResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = AccountFromSnapshot(s)
	}
	return result
}

// ListAccountsResponse wraps the account list.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionOutcomeResponse reports how the engine handled a transaction.
type TransactionOutcomeResponse struct {
	Status string `json:"status"` // applied or rejected
	Reason string `json:"reason,omitempty"`
}

// BatchResponse reports the result of ingesting a CSV batch.
type BatchResponse struct {
	BatchID   string `json:"batch_id"`
	Processed int    `json:"processed"`
	Applied   int    `json:"applied"`
	Rejected  int    `json:"rejected"`
	Skipped   int    `json:"skipped"`
}

// ConsistencyResponse reports the ledger consistency check result.
type ConsistencyResponse struct {
	Consistent bool   `json:"consistent"`
	Status     string `json:"status"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
