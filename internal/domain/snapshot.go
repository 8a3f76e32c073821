package domain

import "github.com/shopspring/decimal"

// AccountSnapshot is the final read view of one account.
type AccountSnapshot struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
