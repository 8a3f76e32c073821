package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/adapter/http/handler"
	"github.com/iho/payengine/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler *handler.LedgerHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/transactions", cfg.LedgerHandler.SubmitTransaction)
		r.Post("/batches", cfg.LedgerHandler.IngestBatch)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.ListAccounts)
			r.Get("/{clientID}", cfg.LedgerHandler.GetAccount)
		})

		r.Get("/ledger/consistency", cfg.LedgerHandler.Consistency)
	})

	return r
}
