package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amount(v string) decimal.NullDecimal {
	d, _ := decimal.NewFromString(v)
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{
			name:    "deposit with amount",
			tx:      Transaction{Type: TransactionTypeDeposit, ClientID: 1, ID: 1, Amount: amount("10.5")},
			wantErr: nil,
		},
		{
			name:    "withdrawal with zero amount",
			tx:      Transaction{Type: TransactionTypeWithdrawal, ClientID: 1, ID: 2, Amount: amount("0")},
			wantErr: nil,
		},
		{
			name:    "deposit without amount",
			tx:      Transaction{Type: TransactionTypeDeposit, ClientID: 1, ID: 3},
			wantErr: ErrMissingAmount,
		},
		{
			name:    "withdrawal with negative amount",
			tx:      Transaction{Type: TransactionTypeWithdrawal, ClientID: 1, ID: 4, Amount: amount("-1")},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "dispute without amount",
			tx:      Transaction{Type: TransactionTypeDispute, ClientID: 1, ID: 1},
			wantErr: nil,
		},
		{
			name:    "unknown type",
			tx:      Transaction{Type: "transfer", ClientID: 1, ID: 5, Amount: amount("1")},
			wantErr: ErrUnknownTransactionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()

			if err != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTransactionType_MovesFunds(t *testing.T) {
	moving := []TransactionType{TransactionTypeDeposit, TransactionTypeWithdrawal}
	referencing := []TransactionType{TransactionTypeDispute, TransactionTypeResolve, TransactionTypeChargeback}

	for _, tt := range moving {
		if !tt.MovesFunds() {
			t.Errorf("expected %s to move funds", tt)
		}
	}
	for _, tt := range referencing {
		if tt.MovesFunds() {
			t.Errorf("expected %s to not move funds", tt)
		}
	}
}

func TestReasonCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{ErrDuplicateTransaction, "duplicate_transaction"},
		{ErrInsufficientFunds, "insufficient_funds"},
		{ErrAccountLocked, "account_locked"},
		{ErrNotDisputable, "not_disputable"},
		{nil, "internal"},
	}

	for _, tt := range tests {
		if got := ReasonCode(tt.err); got != tt.code {
			t.Errorf("ReasonCode(%v) = %q, want %q", tt.err, got, tt.code)
		}
	}
}
