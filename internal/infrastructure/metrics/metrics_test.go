package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	m := New()

	m.TransactionsProcessed.WithLabelValues("deposit").Inc()
	m.TransactionsProcessed.WithLabelValues("deposit").Inc()
	m.TransactionsRejected.WithLabelValues("withdrawal", "insufficient_funds").Inc()
	m.AccountsCreated.Inc()
	m.AccountsLocked.Inc()
	m.BatchesIngested.Inc()
	m.TransactionAmount.Observe(42.5)

	if got := testutil.ToFloat64(m.TransactionsProcessed.WithLabelValues("deposit")); got != 2 {
		t.Errorf("expected 2 processed deposits, got %f", got)
	}
	if got := testutil.ToFloat64(m.TransactionsRejected.WithLabelValues("withdrawal", "insufficient_funds")); got != 1 {
		t.Errorf("expected 1 rejected withdrawal, got %f", got)
	}
	if got := testutil.ToFloat64(m.AccountsCreated); got != 1 {
		t.Errorf("expected 1 account created, got %f", got)
	}
}
