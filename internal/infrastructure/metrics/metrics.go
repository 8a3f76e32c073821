package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Engine metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionsRejected  *prometheus.CounterVec
	TransactionAmount     prometheus.Histogram
	AccountsCreated       prometheus.Counter
	AccountsLocked        prometheus.Counter
	BatchesIngested       prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_transactions_processed_total",
				Help: "Total number of applied transactions by type",
			},
			[]string{"type"},
		),
		TransactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_transactions_rejected_total",
				Help: "Total number of rejected transactions by type and reason",
			},
			[]string{"type", "reason"},
		),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payengine_transaction_amount",
			Help:    "Amounts of applied deposits and withdrawals",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsLocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_locked_total",
			Help: "Total number of accounts locked by chargebacks",
		}),
		BatchesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payengine_batches_ingested_total",
			Help: "Total number of ingested transaction batches",
		}),
	}
}
