package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_Total(t *testing.T) {
	acc := &Account{
		Available: decimal.NewFromInt(70),
		Held:      decimal.NewFromInt(30),
	}

	expected := decimal.NewFromInt(100)
	if !acc.Total().Equal(expected) {
		t.Errorf("expected total %s, got %s", expected, acc.Total())
	}
}

func TestAccount_ValidateWithdrawal(t *testing.T) {
	tests := []struct {
		name      string
		available decimal.Decimal
		locked    bool
		amount    decimal.Decimal
		wantErr   error
	}{
		{
			name:      "amount below available",
			available: decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(50),
			wantErr:   nil,
		},
		{
			name:      "amount equal to available",
			available: decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(100),
			wantErr:   nil,
		},
		{
			name:      "amount above available",
			available: decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(150),
			wantErr:   ErrInsufficientFunds,
		},
		{
			name:      "locked account",
			available: decimal.NewFromInt(100),
			locked:    true,
			amount:    decimal.NewFromInt(50),
			wantErr:   ErrAccountLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{
				Available: tt.available,
				Locked:    tt.locked,
			}

			err := acc.ValidateWithdrawal(tt.amount)

			if err != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAccount_Snapshot(t *testing.T) {
	acc := &Account{
		ClientID:  7,
		Available: decimal.NewFromInt(40),
		Held:      decimal.NewFromInt(10),
		Locked:    true,
	}

	snap := acc.Snapshot()

	if snap.ClientID != 7 {
		t.Errorf("expected client 7, got %d", snap.ClientID)
	}
	if !snap.Total.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected total 50, got %s", snap.Total)
	}
	if !snap.Locked {
		t.Error("expected locked snapshot")
	}
}
